package htmx

// Response headers.
const (
	HeaderHXPushURL  = "HX-Push-Url"
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRefresh  = "HX-Refresh"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
	HeaderHXReselect = "HX-Reselect"
	HeaderVary       = "Vary"
)

// Request headers.
const (
	HeaderHXRequest     = "HX-Request"
	HeaderHXBoosted     = "HX-Boosted"
	HeaderHXCurrentURL  = "HX-Current-URL"
	HeaderHXTarget      = "HX-Target"
	HeaderHXTriggerName = "HX-Trigger-Name"
)
