package models

import "time"

// Defaults applied when a catalog record is created without the field.
const (
	DefaultProjectStatus       = "On-Going"
	DefaultInsightCategory     = "General"
	DefaultInsightAuthor       = "Admin"
	DefaultAchievementIcon     = "Building2"
	DefaultTestimonialProperty = "New Property"
	DefaultServiceIconName     = "Home"
	TestimonialDateLayout      = "2006-01-02"
)

// AchievementIcons lists the icon names the site front-end knows how to draw.
var AchievementIcons = []string{"Trophy", "Users", "Building2", "Award", "TrendingUp"}

// Carousel device types.
const (
	DeviceTypeMobile  = "mobile"
	DeviceTypeDesktop = "desktop"
)

type Project struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Location           string            `json:"location"`
	PlotType           string            `json:"plotType"`
	PricePerSquareFoot float64           `json:"pricePerSquareFoot"`
	Status             string            `json:"status"`
	Description        string            `json:"description"`
	MainImage          string            `json:"mainImage"`
	Images             []string          `json:"images"`
	Amenities          []string          `json:"amenities"`
	Specifications     map[string]string `json:"specifications"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

type Insight struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Achievement struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	Value     int       `json:"value"`
	Suffix    string    `json:"suffix"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Testimonial struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quote     string    `json:"quote"`
	Rating    int       `json:"rating"`
	Property  string    `json:"property"`
	Verified  bool      `json:"verified"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Offering is an entry of the "services" section of the site. The name avoids
// a clash with the application services layer.
type Offering struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IconName    string    `json:"iconName"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CarouselSlide struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	DeviceType string    `json:"deviceType"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type GalleryItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactRequest is a visitor enquiry from the public contact form.
type ContactRequest struct {
	Email string
	Name  string
	Phone string
	Type  string
}
