package handlers

import (
	"doitto/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the middleware dependencies
// routes need into one struct.
type HandlerBundle struct {
	Verifier middleware.TokenVerifier
	Locator  middleware.Locator

	// Helper directory endpoints
	ListHelpersHandler   gin.HandlerFunc
	SearchHelpersHandler gin.HandlerFunc
	GetHelperHandler     gin.HandlerFunc
	CreateHelperHandler  gin.HandlerFunc
	UpdateHelperHandler  gin.HandlerFunc
	AddReviewHandler     gin.HandlerFunc

	// Sharing endpoints
	ShareLinksHandler gin.HandlerFunc
	ShareCardHandler  gin.HandlerFunc

	// Storage endpoints
	UploadHelperImageHandler   gin.HandlerFunc
	UploadProfileBannerHandler gin.HandlerFunc

	// Category endpoints
	ListCategoriesHandler  gin.HandlerFunc
	AddCategoryHandler     gin.HandlerFunc
	ResolveCategoryHandler gin.HandlerFunc

	// Profile and onboarding endpoints
	MeHandler           gin.HandlerFunc
	GetProfileHandler   gin.HandlerFunc
	SaveProfileHandler  gin.HandlerFunc
	ValidateStepHandler gin.HandlerFunc
	SubmitHandler       gin.HandlerFunc

	// Card holder endpoints
	ListCardHoldersHandler  gin.HandlerFunc
	CreateCardHolderHandler gin.HandlerFunc
	GetCardHolderHandler    gin.HandlerFunc
	DeleteCardHolderHandler gin.HandlerFunc
	ListMembersHandler      gin.HandlerFunc
	AddMemberHandler        gin.HandlerFunc
	RemoveMemberHandler     gin.HandlerFunc
}

// Handlers is the set of handler structs a bundle is assembled from.
type Handlers struct {
	Helpers     *HelperHandler
	Share       *ShareHandler
	Storage     *StorageHandler
	Categories  *CategoryHandler
	Profile     *ProfileHandler
	Onboarding  *OnboardingHandler
	CardHolders *CardHolderHandler
}

// NewHandlerBundle wires every handler method into a bundle.
func NewHandlerBundle(h Handlers, verifier middleware.TokenVerifier, locator middleware.Locator) *HandlerBundle {
	return &HandlerBundle{
		Verifier: verifier,
		Locator:  locator,

		ListHelpersHandler:   h.Helpers.ListHelpersHandler,
		SearchHelpersHandler: h.Helpers.SearchHelpersHandler,
		GetHelperHandler:     h.Helpers.GetHelperHandler,
		CreateHelperHandler:  h.Helpers.CreateHelperHandler,
		UpdateHelperHandler:  h.Helpers.UpdateHelperHandler,
		AddReviewHandler:     h.Helpers.AddReviewHandler,

		ShareLinksHandler: h.Share.ShareLinksHandler,
		ShareCardHandler:  h.Share.ShareCardHandler,

		UploadHelperImageHandler:   h.Storage.UploadHelperImageHandler,
		UploadProfileBannerHandler: h.Storage.UploadProfileBannerHandler,

		ListCategoriesHandler:  h.Categories.ListCategoriesHandler,
		AddCategoryHandler:     h.Categories.AddCategoryHandler,
		ResolveCategoryHandler: h.Categories.ResolveCategoryHandler,

		MeHandler:           h.Profile.MeHandler,
		GetProfileHandler:   h.Profile.GetProfileHandler,
		SaveProfileHandler:  h.Profile.SaveProfileHandler,
		ValidateStepHandler: h.Onboarding.ValidateStepHandler,
		SubmitHandler:       h.Onboarding.SubmitHandler,

		ListCardHoldersHandler:  h.CardHolders.ListCardHoldersHandler,
		CreateCardHolderHandler: h.CardHolders.CreateCardHolderHandler,
		GetCardHolderHandler:    h.CardHolders.GetCardHolderHandler,
		DeleteCardHolderHandler: h.CardHolders.DeleteCardHolderHandler,
		ListMembersHandler:      h.CardHolders.ListMembersHandler,
		AddMemberHandler:        h.CardHolders.AddMemberHandler,
		RemoveMemberHandler:     h.CardHolders.RemoveMemberHandler,
	}
}
