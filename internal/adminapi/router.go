package adminapi

// InitRouter registers every /api route group.
func InitRouter() {
	registerAuthRoutes()
	registerProductRoutes()
	registerCategoryRoutes()
	registerKitRoutes()
	registerUploadRoutes()
}
