package webserver

// Keys for request-scoped values shared with handlers.
const (
	ContextAppKey      = "appctx"
	ContextDBKey       = "db"
	ContextSessKey     = "sessmgr"
	ContextUploaderKey = "uploader"
	ContextIdentityKey = "identity"
)
