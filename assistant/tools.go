package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Param describes one input field of a tool, in the shape agents expect for
// tool selection.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// Tool is one callable unit the conversational agent may invoke: a typed
// input schema, a natural-language description the agent uses to pick the
// tool, and an executor that shapes a bounded JSON payload.
type Tool struct {
	Name        string
	Description string
	Parameters  []Param
	Execute     func(ctx context.Context, userID string, args json.RawMessage) (any, error)
}

// Registry holds the tools exposed to the agent.
type Registry struct {
	store Store
	tools map[string]Tool
	order []string
}

const (
	classLimit   = 10
	sessionLimit = 10
	venueLimit   = 10
	bookingLimit = 20
)

func NewRegistry(store Store) *Registry {
	reg := &Registry{
		store: store,
		tools: make(map[string]Tool),
	}
	reg.add(reg.searchClassesTool())
	reg.add(reg.upcomingSessionsTool())
	reg.add(reg.findVenuesTool())
	reg.add(reg.myBookingsTool())
	reg.add(reg.classAvailabilityTool())
	return reg
}

func (r *Registry) add(t Tool) {
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Manifest lists every tool with its schema, in registration order.
func (r *Registry) Manifest() []map[string]any {
	out := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		out = append(out, map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"parameters":  t.Parameters,
		})
	}
	return out
}

func (r *Registry) searchClassesTool() Tool {
	return Tool{
		Name: "search_classes",
		Description: "Search the fitness class catalog. All parameters are optional filters; " +
			"omit them all to browse. Returns at most 10 classes with name, instructor, " +
			"duration and tier level.",
		Parameters: []Param{
			{Name: "category", Type: "string", Description: "Category id to filter by"},
			{Name: "tier", Type: "string", Description: "Tier level: basic, performance or champion"},
			{Name: "instructor", Type: "string", Description: "Exact instructor name"},
			{Name: "query", Type: "string", Description: "Free-text match on the class name"},
		},
		Execute: func(ctx context.Context, _ string, args json.RawMessage) (any, error) {
			var q ActivityQuery
			if err := unmarshalArgs(args, &q); err != nil {
				return nil, err
			}

			list, err := r.store.SearchActivities(ctx, q, classLimit)
			if err != nil {
				return nil, err
			}

			items := make([]map[string]any, 0, len(list))
			for _, a := range list {
				items = append(items, map[string]any{
					"id":         a.ActivityID,
					"name":       a.Name,
					"instructor": a.Instructor,
					"duration":   a.Duration,
					"tier":       a.Tier,
					"category":   a.CategoryID,
				})
			}
			return map[string]any{"count": len(items), "classes": items}, nil
		},
	}
}

func (r *Registry) upcomingSessionsTool() Tool {
	return Tool{
		Name: "upcoming_sessions",
		Description: "List upcoming scheduled class sessions. Optionally filter by activity, " +
			"venue, a calendar date (YYYY-MM-DD) or a city name. Returns at most 10 sessions " +
			"with start time and remaining spots.",
		Parameters: []Param{
			{Name: "activity_id", Type: "string", Description: "Activity id to filter by"},
			{Name: "venue_id", Type: "string", Description: "Venue id to filter by"},
			{Name: "date", Type: "string", Description: "Calendar day, YYYY-MM-DD"},
			{Name: "city", Type: "string", Description: "City the venue is in"},
		},
		Execute: func(ctx context.Context, _ string, args json.RawMessage) (any, error) {
			var q SessionQuery
			if err := unmarshalArgs(args, &q); err != nil {
				return nil, err
			}

			list, err := r.store.UpcomingSessions(ctx, q, sessionLimit)
			if err != nil {
				return nil, err
			}

			// city lives on the venue document; filter here
			items := make([]map[string]any, 0, sessionLimit)
			for _, s := range list {
				if q.City != "" && !strings.EqualFold(s.City, q.City) {
					continue
				}
				items = append(items, map[string]any{
					"id":         s.SessionID,
					"class":      s.ActivityName,
					"instructor": s.Instructor,
					"venue":      s.VenueName,
					"city":       s.City,
					"start_time": s.StartTime,
					"spots_left": s.SpotsLeft,
				})
				if len(items) >= sessionLimit {
					break
				}
			}
			return map[string]any{"count": len(items), "sessions": items}, nil
		},
	}
}

func (r *Registry) findVenuesTool() Tool {
	return Tool{
		Name: "find_venues",
		Description: "Find gyms and studios. Optionally filter by city or by a required " +
			"amenity. Returns at most 10 venues with address and amenities.",
		Parameters: []Param{
			{Name: "city", Type: "string", Description: "City name, case-insensitive"},
			{Name: "amenity", Type: "string", Description: "Amenity the venue must have, e.g. showers"},
		},
		Execute: func(ctx context.Context, _ string, args json.RawMessage) (any, error) {
			var q struct {
				City    string `json:"city,omitempty"`
				Amenity string `json:"amenity,omitempty"`
			}
			if err := unmarshalArgs(args, &q); err != nil {
				return nil, err
			}

			list, err := r.store.FindVenues(ctx, q.City, q.Amenity, venueLimit)
			if err != nil {
				return nil, err
			}

			items := make([]map[string]any, 0, len(list))
			for _, v := range list {
				amenities := v.Amenities
				if amenities == nil {
					amenities = []string{}
				}
				items = append(items, map[string]any{
					"id":        v.VenueID,
					"name":      v.Name,
					"address":   v.Address,
					"city":      v.City,
					"amenities": amenities,
				})
			}
			return map[string]any{"count": len(items), "venues": items}, nil
		},
	}
}

func (r *Registry) myBookingsTool() Tool {
	return Tool{
		Name: "my_bookings",
		Description: "List the current user's class bookings, newest first. Optionally filter " +
			"by status: confirmed, cancelled, attended or no-show. Returns at most 20 bookings.",
		Parameters: []Param{
			{Name: "status", Type: "string", Description: "Booking status to filter by"},
		},
		Execute: func(ctx context.Context, userID string, args json.RawMessage) (any, error) {
			// missing credentials become an error field, never a failure
			if userID == "" {
				return map[string]any{
					"error":    "authentication required",
					"count":    0,
					"bookings": []any{},
				}, nil
			}

			var q struct {
				Status string `json:"status,omitempty"`
			}
			if err := unmarshalArgs(args, &q); err != nil {
				return nil, err
			}

			list, err := r.store.UserBookings(ctx, userID, q.Status, bookingLimit)
			if err != nil {
				return nil, err
			}

			items := make([]map[string]any, 0, len(list))
			for _, b := range list {
				items = append(items, map[string]any{
					"id":         b.BookingID,
					"class":      b.ActivityName,
					"venue":      b.VenueName,
					"start_time": b.StartTime,
					"status":     b.Status,
					"booked_at":  b.CreatedAt,
				})
			}
			return map[string]any{"count": len(items), "bookings": items}, nil
		},
	}
}

func (r *Registry) classAvailabilityTool() Tool {
	return Tool{
		Name: "class_availability",
		Description: "Check remaining spots for one class session. Requires the session id; " +
			"returns capacity, confirmed bookings and spots left.",
		Parameters: []Param{
			{Name: "session_id", Type: "string", Description: "Session id to check", Required: true},
		},
		Execute: func(ctx context.Context, _ string, args json.RawMessage) (any, error) {
			var q struct {
				SessionID string `json:"session_id"`
			}
			if err := unmarshalArgs(args, &q); err != nil {
				return nil, err
			}
			if q.SessionID == "" {
				return nil, fmt.Errorf("session_id is required")
			}

			capacity, confirmed, status, err := r.store.SessionAvailability(ctx, q.SessionID)
			if err != nil {
				return nil, fmt.Errorf("session not found")
			}

			spots := capacity - confirmed
			if spots < 0 {
				spots = 0
			}
			return map[string]any{
				"session_id": q.SessionID,
				"capacity":   capacity,
				"confirmed":  confirmed,
				"spots_left": spots,
				"status":     status,
			}, nil
		},
	}
}

func unmarshalArgs(args json.RawMessage, dst any) error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
