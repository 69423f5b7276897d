package common

// AuthorizationHeaderName carries the admin access token as "Bearer <jwt>".
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the scheme prefix expected in AuthorizationHeaderName.
const BearerPrefix = "Bearer "

// Upload folders, one per catalog section that stores images.
const (
	UploadFolderProject  = "project"
	UploadFolderInsight  = "insight"
	UploadFolderCarousel = "carousel"
	UploadFolderGallery  = "gallery"
)
