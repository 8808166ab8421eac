package model

import "time"

// GeoPoint is a WGS84 coordinate pair. Longitude comes first throughout the
// codebase and in every store query; mixing up the order is the classic geo
// defect, so the fields are named rather than indexed.
type GeoPoint struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Location is a physical venue in the directory
type Location struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Created     time.Time `json:"created"`
	Photo       string    `json:"photo,omitempty"`
	Address     string    `json:"address"`
	Point       GeoPoint  `json:"point"`
	AuthorID    string    `json:"author_id"`
}

// Sake is a reviewable sake item in the directory
type Sake struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       string    `json:"description,omitempty"`
	Tags              []string  `json:"tags,omitempty"`
	MainCategory      string    `json:"main_category,omitempty"`
	SecondaryCategory string    `json:"secondary_category,omitempty"`
	Created           time.Time `json:"created"`
	Photo             string    `json:"photo,omitempty"`

	// Reviews is populated only by read paths that ask for the join.
	Reviews []*Review `json:"reviews,omitempty"`
}

// SakeWithRatings pairs a sake with the raw rating values of its reviews,
// the input row of the top-rated ranking.
type SakeWithRatings struct {
	Sake    *Sake `json:"sake"`
	Ratings []int `json:"ratings"`
}

// RatedSake pairs a sake with its mean review rating for the top listing
type RatedSake struct {
	Sake          *Sake   `json:"sake"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

// TagCount is one entry of the tag cloud aggregation
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// NearbyLocation is the projected payload of the geospatial query:
// slug, name, description, point and photo only, plus the computed
// distance from the query point.
type NearbyLocation struct {
	Slug           string   `json:"slug"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Point          GeoPoint `json:"point"`
	Photo          string   `json:"photo,omitempty"`
	DistanceMeters float64  `json:"distance_meters"`
}

// SakePage is one page of the sake listing
type SakePage struct {
	Sakes []*Sake `json:"sakes"`
	Page  int     `json:"page"`
	Pages int     `json:"pages"`
	Total int     `json:"total"`
}

// CreateLocationRequest is the payload for creating a location
type CreateLocationRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Address     string   `json:"address"`
	Lng         *float64 `json:"lng"`
	Lat         *float64 `json:"lat"`
	Photo       string   `json:"photo"`
}

// UpdateLocationRequest is the payload for editing a location.
// Nil fields are left unchanged.
type UpdateLocationRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	Address     *string  `json:"address"`
	Lng         *float64 `json:"lng"`
	Lat         *float64 `json:"lat"`
	Photo       *string  `json:"photo"`
}

// CreateSakeRequest is the payload for creating a sake
type CreateSakeRequest struct {
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Tags              []string `json:"tags"`
	MainCategory      string   `json:"main_category"`
	SecondaryCategory string   `json:"secondary_category"`
	Photo             string   `json:"photo"`
}

// UpdateSakeRequest is the payload for editing a sake.
// Nil fields are left unchanged.
type UpdateSakeRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Tags              []string `json:"tags"`
	MainCategory      *string  `json:"main_category"`
	SecondaryCategory *string  `json:"secondary_category"`
	Photo             *string  `json:"photo"`
}
