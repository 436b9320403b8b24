package assistant

import (
	"context"
	"time"

	"fitgrid/activities"
	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/sessions"
	"fitgrid/utils"
	"fitgrid/venues"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityQuery are the optional parameters of the search_classes tool.
type ActivityQuery struct {
	Category   string `json:"category,omitempty"`
	Tier       string `json:"tier,omitempty"`
	Instructor string `json:"instructor,omitempty"`
	Query      string `json:"query,omitempty"`
}

// SessionQuery are the optional parameters of the upcoming_sessions tool.
// City cannot be pushed into the store query (it lives on the venue
// document) and is applied client-side by the tool.
type SessionQuery struct {
	ActivityID string `json:"activity_id,omitempty"`
	VenueID    string `json:"venue_id,omitempty"`
	Date       string `json:"date,omitempty"`
	City       string `json:"city,omitempty"`
}

// Store is the catalog/booking data surface the assistant tools query.
type Store interface {
	SearchActivities(ctx context.Context, q ActivityQuery, limit int64) ([]models.Activity, error)
	UpcomingSessions(ctx context.Context, q SessionQuery, limit int64) ([]models.SessionView, error)
	FindVenues(ctx context.Context, city, amenity string, limit int64) ([]models.Venue, error)
	UserBookings(ctx context.Context, userID, status string, limit int64) ([]models.BookingView, error)
	SessionAvailability(ctx context.Context, sessionID string) (capacity, confirmed int, status string, err error)
}

// mongoStore implements Store against the live collections.
type mongoStore struct{}

func NewMongoStore() Store { return mongoStore{} }

func (mongoStore) SearchActivities(ctx context.Context, q ActivityQuery, limit int64) ([]models.Activity, error) {
	filter := activities.BuildFilter(q.Category, q.Tier, q.Instructor, q.Query)
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})
	return utils.FindAndDecode[models.Activity](ctx, db.ActivitiesCollection, filter, opts)
}

func (mongoStore) UpcomingSessions(ctx context.Context, q SessionQuery, limit int64) ([]models.SessionView, error) {
	filter, err := sessions.BuildFilter(q.ActivityID, q.VenueID, string(models.SessionScheduled), q.Date)
	if err != nil {
		return nil, err
	}
	if q.Date == "" {
		filter["start_time"] = bson.M{"$gte": time.Now()}
	}

	// overfetch so the tool's client-side city filter still has candidates
	opts := options.Find().SetLimit(limit * 5).SetSort(bson.D{{Key: "start_time", Value: 1}})
	raw, err := utils.FindAndDecode[models.ClassSession](ctx, db.SessionsCollection, filter, opts)
	if err != nil {
		return nil, err
	}

	views := make([]models.SessionView, 0, len(raw))
	for _, s := range raw {
		views = append(views, hydrateSession(ctx, s))
	}
	return views, nil
}

func (mongoStore) FindVenues(ctx context.Context, city, amenity string, limit int64) ([]models.Venue, error) {
	filter := venues.BuildFilter(city, amenity)
	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "name", Value: 1}})
	return utils.FindAndDecode[models.Venue](ctx, db.VenuesCollection, filter, opts)
}

func (mongoStore) UserBookings(ctx context.Context, userID, status string, limit int64) ([]models.BookingView, error) {
	filter := bson.M{"userid": userID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	raw, err := utils.FindAndDecode[models.Booking](ctx, db.BookingsCollection, filter, opts)
	if err != nil {
		return nil, err
	}

	views := make([]models.BookingView, 0, len(raw))
	for _, b := range raw {
		view := models.BookingView{
			BookingID: b.BookingID,
			SessionID: b.SessionID,
			Status:    string(b.Status),
			CreatedAt: b.CreatedAt,
		}
		var s models.ClassSession
		if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": b.SessionID}).Decode(&s); err == nil {
			sv := hydrateSession(ctx, s)
			view.ActivityName = sv.ActivityName
			view.VenueName = sv.VenueName
			view.StartTime = s.StartTime
		}
		views = append(views, view)
	}
	return views, nil
}

func (mongoStore) SessionAvailability(ctx context.Context, sessionID string) (int, int, string, error) {
	var s models.ClassSession
	if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": sessionID}).Decode(&s); err != nil {
		return 0, 0, "", err
	}
	confirmed, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"sessionid": sessionID,
		"status":    models.BookingConfirmed,
	})
	if err != nil {
		return 0, 0, "", err
	}
	return s.MaxCapacity, int(confirmed), string(s.Status), nil
}

// hydrateSession joins a session with its activity and venue; references
// that fail to resolve leave empty fields instead of erroring.
func hydrateSession(ctx context.Context, s models.ClassSession) models.SessionView {
	view := models.SessionView{
		SessionID:   s.SessionID,
		ActivityID:  s.ActivityID,
		VenueID:     s.VenueID,
		StartTime:   s.StartTime,
		MaxCapacity: s.MaxCapacity,
		Status:      string(s.Status),
	}

	var a models.Activity
	if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": s.ActivityID}).Decode(&a); err == nil {
		view.ActivityName = a.Name
		view.Instructor = a.Instructor
		view.Tier = a.Tier
	}
	var v models.Venue
	if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": s.VenueID}).Decode(&v); err == nil {
		view.VenueName = v.Name
		view.City = v.City
	}

	confirmed, err := db.BookingsCollection.CountDocuments(ctx, bson.M{
		"sessionid": s.SessionID,
		"status":    models.BookingConfirmed,
	})
	if err == nil {
		view.SpotsLeft = sessions.SpotsLeft(s.MaxCapacity, int(confirmed))
	}
	return view
}
