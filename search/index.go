package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/models"
	"fitgrid/rdx"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

func invertedKey(entityType, token string) string {
	return "inverted:" + entityType + ":" + token
}

// IndexDatainRedis maintains the Redis inverted index for one entity. On
// writes it re-tokenizes the document's searchable text; on deletes it drops
// the id from every token set it appears in.
func IndexDatainRedis(ctx context.Context, event models.Index) error {
	switch event.EntityType {
	case "activity", "venue", "session":
	default:
		// bookings and other write events carry no searchable text
		return nil
	}

	if event.Method == "DELETE" {
		return removeFromIndex(ctx, event.EntityType, event.EntityId)
	}

	text, err := searchableText(ctx, event.EntityType, event.EntityId)
	if err != nil {
		return err
	}

	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	score := float64(time.Now().UnixNano())
	pipe := rdx.Conn.Pipeline()
	for _, t := range tokens {
		pipe.ZAdd(ctx, invertedKey(event.EntityType, t), redis.Z{Score: score, Member: event.EntityId})
	}
	// membership set used for cleanup on delete
	pipe.SAdd(ctx, "indexed:"+event.EntityType+":"+event.EntityId, tokensToAny(tokens)...)
	_, err = pipe.Exec(ctx)
	return err
}

func removeFromIndex(ctx context.Context, entityType, entityID string) error {
	memberKey := "indexed:" + entityType + ":" + entityID
	tokens, err := rdx.Conn.SMembers(ctx, memberKey).Result()
	if err != nil {
		return err
	}

	pipe := rdx.Conn.Pipeline()
	for _, t := range tokens {
		pipe.ZRem(ctx, invertedKey(entityType, t), entityID)
	}
	pipe.Del(ctx, memberKey)
	_, err = pipe.Exec(ctx)
	return err
}

// searchableText gathers the text fields worth indexing for each entity.
func searchableText(ctx context.Context, entityType, entityID string) (string, error) {
	switch entityType {
	case "activity":
		var a models.Activity
		if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": entityID}).Decode(&a); err != nil {
			return "", err
		}
		return strings.Join(append([]string{a.Name, a.Instructor, a.Tier, a.Description}, a.Tags...), " "), nil
	case "venue":
		var v models.Venue
		if err := db.VenuesCollection.FindOne(ctx, bson.M{"venueid": entityID}).Decode(&v); err != nil {
			return "", err
		}
		return strings.Join(append([]string{v.Name, v.Address, v.City}, v.Amenities...), " "), nil
	case "session":
		var s models.ClassSession
		if err := db.SessionsCollection.FindOne(ctx, bson.M{"sessionid": entityID}).Decode(&s); err != nil {
			return "", err
		}
		// index sessions under their activity's name
		var a models.Activity
		if err := db.ActivitiesCollection.FindOne(ctx, bson.M{"activityid": s.ActivityID}).Decode(&a); err != nil {
			return "", err
		}
		return a.Name + " " + a.Instructor, nil
	default:
		log.Println("Unknown entity type for indexing:", entityType)
		return "", fmt.Errorf("unknown entity type %q", entityType)
	}
}

func tokensToAny(tokens []string) []any {
	out := make([]any, len(tokens))
	for i, t := range tokens {
		out[i] = t
	}
	return out
}
