package config

// Collection names shared by every gateway backend.
const (
	HelpersCollection     = "helpers"
	CardHoldersCollection = "cardHolders"
	UsersCollection       = "users"
	CategoriesCollection  = "serviceCategories"
)

// Storage folders for uploaded images.
const (
	AvatarsFolder = "avatars"
	BannersFolder = "banners"
)
