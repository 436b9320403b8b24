package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection       *mongo.Collection
	ProfilesCollection   *mongo.Collection
	ActivitiesCollection *mongo.Collection
	CategoriesCollection *mongo.Collection
	SessionsCollection   *mongo.Collection
	BookingsCollection   *mongo.Collection
	VenuesCollection     *mongo.Collection
	Client               *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	database := Client.Database("fitgrid")
	UserCollection = database.Collection("users")
	ProfilesCollection = database.Collection("profiles")
	ActivitiesCollection = database.Collection("activities")
	CategoriesCollection = database.Collection("categories")
	SessionsCollection = database.Collection("sessions")
	BookingsCollection = database.Collection("bookings")
	VenuesCollection = database.Collection("venues")
}
