package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MediaKind selects the photo or video list of a property.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

// Property is a listing owned by a seller or agent. Only verified,
// unarchived listings appear in public search.
type Property struct {
	ID                   uuid.UUID    `json:"id"`
	OwnerID              uuid.UUID    `json:"ownerId"`
	Title                string       `json:"title"`
	Location             string       `json:"location"`
	Description          string       `json:"description"`
	Price                float64      `json:"price"`
	Rooms                int          `json:"rooms"`
	Floor                null.Int     `json:"floor"`
	Area                 null.Float64 `json:"area"`
	DistanceToMetro      null.Float64 `json:"distanceToMetro"`
	DistanceToUniversity null.Float64 `json:"distanceToUniversity"`
	Latitude             null.Float64 `json:"latitude"`
	Longitude            null.Float64 `json:"longitude"`
	Photos               []string     `json:"photos"`
	Videos               []string     `json:"videos"`
	IsVerified           bool         `json:"isVerified"`
	IsArchived           bool         `json:"isArchived"`
	RatingAverage        float64      `json:"ratingAverage"`
	RatingCount          int          `json:"ratingCount"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// PubliclyVisible reports whether the listing may appear in public search.
func (p *Property) PubliclyVisible() bool {
	return p.IsVerified && !p.IsArchived
}

// Media returns the list for kind.
func (p *Property) Media(kind MediaKind) []string {
	if kind == MediaVideo {
		return p.Videos
	}
	return p.Photos
}

// SetMedia replaces the list for kind.
func (p *Property) SetMedia(kind MediaKind, keys []string) {
	if kind == MediaVideo {
		p.Videos = keys
		return
	}
	p.Photos = keys
}

// CreatePropertyInput represents a new listing.
type CreatePropertyInput struct {
	Title                string       `json:"title" binding:"required,max=200"`
	Location             string       `json:"location" binding:"required,max=200"`
	Description          string       `json:"description" binding:"max=5000"`
	Price                float64      `json:"price" binding:"gte=0"`
	Rooms                int          `json:"rooms" binding:"gte=0"`
	Floor                null.Int     `json:"floor"`
	Area                 null.Float64 `json:"area"`
	DistanceToMetro      null.Float64 `json:"distanceToMetro"`
	DistanceToUniversity null.Float64 `json:"distanceToUniversity"`
	Latitude             null.Float64 `json:"latitude"`
	Longitude            null.Float64 `json:"longitude"`
}

// UpdatePropertyInput carries optional listing changes.
type UpdatePropertyInput struct {
	Title                *string      `json:"title" binding:"omitempty,max=200"`
	Location             *string      `json:"location" binding:"omitempty,max=200"`
	Description          *string      `json:"description" binding:"omitempty,max=5000"`
	Price                *float64     `json:"price" binding:"omitempty,gte=0"`
	Rooms                *int         `json:"rooms" binding:"omitempty,gte=0"`
	Floor                null.Int     `json:"floor"`
	Area                 null.Float64 `json:"area"`
	DistanceToMetro      null.Float64 `json:"distanceToMetro"`
	DistanceToUniversity null.Float64 `json:"distanceToUniversity"`
	Latitude             null.Float64 `json:"latitude"`
	Longitude            null.Float64 `json:"longitude"`
}

// PropertyFilter narrows property searches. Nil pointers mean no constraint.
type PropertyFilter struct {
	Keyword    string
	MinPrice   *float64
	MaxPrice   *float64
	Rooms      *int
	OwnerID    *uuid.UUID
	OnlyPublic bool
	Unverified bool
}
