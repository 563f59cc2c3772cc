package domain

// User-presentable messages. The wording of the investor notices is shown
// verbatim by the presentation layer.
const (
	MsgInvalidCredentials     = "Invalid email or password"
	MsgRegistrationRejected   = "Your registration has been rejected. Please contact support for assistance."
	MsgRegistrationPending    = "Your registration is pending approval. You will be notified once approved."
	MsgRegisterFirst          = "Please register first to access the investor portal."
	MsgRegistrationReceived   = "Thank you for registering. Your account is pending approval."
	MsgContactReceived        = "Thank you for your message. We will get back to you soon."
	MsgEmailTaken             = "An account with this email already exists"
	MsgSignInRequired         = "Please sign in to continue"
	MsgGenericAuth            = "Authentication failed"
	MsgAdminRequired          = "Admin access required"
	MsgPortalLocked           = "The investor portal is available to approved investors only"
	MsgInvalidInput           = "Please correct the highlighted fields"
	MsgNotFound               = "The requested item was not found"
	MsgAlreadyExists          = "The item already exists"
	MsgConflict               = "The item was changed by someone else. Please reload and try again"
	MsgTemporarilyUnavailable = "The service is temporarily unavailable. Please try again"
	MsgTooManyRequests        = "Too many requests. Please wait a moment and try again"
	MsgUnexpected             = "Something went wrong. Please try again"
)
