package rdx

import (
	"log"
	"strconv"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/globals"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FlushViewCounts periodically moves per-entity view counters from Redis to
// MongoDB in bulk. Counters are written by the read handlers as
// "views:<entityType>:<entityId>".
func FlushViewCounts() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "views:*:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 3 {
				log.Println("Invalid Redis view key format:", key)
				continue
			}
			entityType := parts[1]
			entityID := parts[2]

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis Get error for key", key, ":", err)
				continue
			}

			count, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse view count:", countStr)
				continue
			}

			var targetCollection *mongo.Collection
			var idField string
			switch entityType {
			case "venue":
				targetCollection = db.VenuesCollection
				idField = "venueid"
			case "activity":
				targetCollection = db.ActivitiesCollection
				idField = "activityid"
			default:
				log.Println("Unknown entity type:", entityType)
				continue
			}

			// the Redis key is deleted after flushing, so the counter
			// holds a delta and Mongo accumulates it
			_, err = targetCollection.UpdateOne(globals.Ctx,
				bson.M{idField: entityID},
				bson.M{"$inc": bson.M{"views": count}},
			)
			if err != nil {
				log.Println("MongoDB update error for", entityType, entityID, ":", err)
				continue
			}

			if err := Conn.Del(globals.Ctx, key).Err(); err != nil {
				log.Println("Failed to delete Redis key:", key)
			}
		}
	}
}

// IncrView bumps the Redis view counter for an entity; best effort.
func IncrView(entityType, entityID string) {
	if err := Conn.Incr(globals.Ctx, "views:"+entityType+":"+entityID).Err(); err != nil {
		log.Println("Redis Incr error:", err)
	}
}
