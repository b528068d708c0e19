package services

import (
	"strings"
	"time"

	"github.com/srgjo27/venue_booking/internal/core/domain"
)

type seedEvent struct {
	title, start, end string
}

func seedFarm(state, city, name string, events ...seedEvent) domain.Farm {
	f := domain.Farm{
		FarmID:  strings.ToLower(strings.ReplaceAll(state+"-"+city+"-"+name, " ", "-")),
		Address: domain.Address{Country: "India", City: city},
		Details: domain.FarmDetails{Name: name, Status: domain.BookingUpcoming},
		Events:  []domain.Event{},
	}
	for _, e := range events {
		start, _ := time.Parse(time.RFC3339, e.start)
		end, _ := time.Parse(time.RFC3339, e.end)
		f.Events = append(f.Events, domain.Event{
			ID:    f.FarmID + "-" + strings.ToLower(strings.ReplaceAll(e.title, " ", "-")),
			Title: e.title,
			Start: start,
			End:   end,
		})
	}
	return f
}

// DemoCatalogue is the demo tree loaded when SEED_DEMO_DATA is set.
func DemoCatalogue() []domain.State {
	return []domain.State{
		{Name: "Delhi", Places: []domain.Place{
			{Name: "Chattarpur", Farms: []domain.Farm{
				seedFarm("Delhi", "Chattarpur", "XYZ Farm",
					seedEvent{"Art Expo", "2024-07-05T11:00:00Z", "2024-07-05T16:00:00Z"},
					seedEvent{"Music Festival", "2024-07-20T13:00:00Z", "2024-07-20T22:00:00Z"}),
				seedFarm("Delhi", "Chattarpur", "Vert Farm",
					seedEvent{"Dance Workshop", "2024-07-22T15:00:00Z", "2024-07-22T18:00:00Z"}),
			}},
			{Name: "Siraspur", Farms: []domain.Farm{
				seedFarm("Delhi", "Siraspur", "White Farm",
					seedEvent{"Startup Pitch", "2024-07-09T14:00:00Z", "2024-07-09T17:00:00Z"}),
				seedFarm("Delhi", "Siraspur", "Mallu Farm",
					seedEvent{"Tech Conference", "2024-07-12T10:00:00Z", "2024-07-12T17:00:00Z"},
					seedEvent{"AI Workshop", "2024-07-13T09:00:00Z", "2024-07-13T12:00:00Z"}),
			}},
		}},
		{Name: "Maharashtra", Places: []domain.Place{
			{Name: "Mumbai", Farms: []domain.Farm{
				seedFarm("Maharashtra", "Mumbai", "Gateway Farm",
					seedEvent{"Film Festival", "2024-08-15T18:00:00Z", "2024-08-15T23:00:00Z"},
					seedEvent{"Startup Meetup", "2024-08-20T14:00:00Z", "2024-08-20T17:00:00Z"}),
				seedFarm("Maharashtra", "Mumbai", "Seaside Farm",
					seedEvent{"Beach Party", "2024-08-25T16:00:00Z", "2024-08-25T22:00:00Z"}),
			}},
			{Name: "Pune", Farms: []domain.Farm{
				seedFarm("Maharashtra", "Pune", "Tech Park",
					seedEvent{"Coding Hackathon", "2024-08-10T08:00:00Z", "2024-08-10T20:00:00Z"}),
				seedFarm("Maharashtra", "Pune", "Art Village",
					seedEvent{"Craft Workshop", "2024-08-18T09:00:00Z", "2024-08-18T13:00:00Z"}),
			}},
		}},
		{Name: "Karnataka", Places: []domain.Place{
			{Name: "Bangalore", Farms: []domain.Farm{
				seedFarm("Karnataka", "Bangalore", "Tech Hub",
					seedEvent{"Startup Pitch", "2024-09-05T10:00:00Z", "2024-09-05T14:00:00Z"},
					seedEvent{"Blockchain Conference", "2024-09-12T09:00:00Z", "2024-09-12T17:00:00Z"}),
				seedFarm("Karnataka", "Bangalore", "Green Valley",
					seedEvent{"Sustainability Summit", "2024-09-18T10:00:00Z", "2024-09-18T18:00:00Z"}),
			}},
			{Name: "Mysore", Farms: []domain.Farm{
				seedFarm("Karnataka", "Mysore", "Palace Grounds",
					seedEvent{"Cultural Fest", "2024-09-25T11:00:00Z", "2024-09-25T20:00:00Z"}),
			}},
		}},
	}
}
