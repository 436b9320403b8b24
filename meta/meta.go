package meta

import (
	"context"
	"encoding/xml"
	"net/http"
	"os"
	"strings"
	"time"

	"fitgrid/db"
	"fitgrid/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var baseURL = func() string {
	if v := os.Getenv("BASE_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	return "https://fitgrid.app"
}()

var staticRoutes = []string{
	"/",
	"/classes",
	"/venues",
	"/sessions",
	"/onboarding",
	"/login",
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

// Sitemap serves sitemap.xml: the fixed routes plus one URL per venue and
// per class.
func Sitemap(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	today := time.Now().Format("2006-01-02")
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, route := range staticRoutes {
		set.URLs = append(set.URLs, urlEntry{Loc: baseURL + route, LastMod: today, ChangeFreq: "daily"})
	}

	for _, loc := range entityURLs(ctx) {
		set.URLs = append(set.URLs, urlEntry{Loc: loc, ChangeFreq: "weekly"})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))
	xml.NewEncoder(w).Encode(set)
}

// entityURLs lists the dynamic venue and class URLs. Lookup failures just
// shrink the sitemap.
func entityURLs(ctx context.Context) []string {
	var out []string

	opts := options.Find().SetProjection(bson.M{"venueid": 1}).SetLimit(5000)
	if vs, err := utils.FindAndDecode[struct {
		VenueID string `bson:"venueid"`
	}](ctx, db.VenuesCollection, bson.M{}, opts); err == nil {
		for _, v := range vs {
			out = append(out, baseURL+"/venues/"+v.VenueID)
		}
	}

	opts = options.Find().SetProjection(bson.M{"activityid": 1}).SetLimit(5000)
	if as, err := utils.FindAndDecode[struct {
		ActivityID string `bson:"activityid"`
	}](ctx, db.ActivitiesCollection, bson.M{}, opts); err == nil {
		for _, a := range as {
			out = append(out, baseURL+"/classes/"+a.ActivityID)
		}
	}

	return out
}

// Manifest serves the web app manifest.
func Manifest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"name":             "FitGrid",
		"short_name":       "FitGrid",
		"description":      "Find and book fitness classes near you",
		"start_url":        "/",
		"display":          "standalone",
		"background_color": "#ffffff",
		"theme_color":      "#0f766e",
		"icons": []utils.M{
			{"src": "/static/icons/icon-192.png", "sizes": "192x192", "type": "image/png"},
			{"src": "/static/icons/icon-512.png", "sizes": "512x512", "type": "image/png"},
		},
	})
}

// Robots serves robots.txt.
func Robots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\n\nSitemap: " + baseURL + "/sitemap.xml\n"))
}

// GetUsersMeta returns minimal public data for a set of users, for rendering
// avatars on rosters and reviews.
func GetUsersMeta(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing ids param")
		return
	}

	ids := strings.Split(idsParam, ",")
	filter := bson.M{"userid": bson.M{"$in": ids}}
	opts := options.Find().SetProjection(bson.M{"userid": 1, "username": 1})

	cursor, err := db.UserCollection.Find(ctx, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}
	defer cursor.Close(ctx)

	result := make(map[string]map[string]string)
	for cursor.Next(ctx) {
		var user struct {
			UserID   string `bson:"userid"`
			Username string `bson:"username"`
		}
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		result[user.UserID] = map[string]string{"username": user.Username}
	}

	utils.RespondWithJSON(w, http.StatusOK, result)
}
