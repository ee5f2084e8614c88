// Package entity defines data structures used by the web layer of the
// EcoCart storefront.
package entity

// Msg is the standard API response envelope for catalog and cart endpoints.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// AllSetting aggregates the runtime settings stored in the database.
type AllSetting struct {
	WebListen     string `json:"webListen" form:"webListen"`         // Web server listen IP address
	WebDomain     string `json:"webDomain" form:"webDomain"`         // Expected Host header, empty disables validation
	WebPort       int    `json:"webPort" form:"webPort"`             // Web server port number
	WebCertFile   string `json:"webCertFile" form:"webCertFile"`     // Path to TLS certificate file
	WebKeyFile    string `json:"webKeyFile" form:"webKeyFile"`       // Path to TLS private key file
	SessionMaxAge int    `json:"sessionMaxAge" form:"sessionMaxAge"` // Session lifetime in minutes
	PageSize      int    `json:"pageSize" form:"pageSize"`           // Products per page
	TimeLocation  string `json:"timeLocation" form:"timeLocation"`   // Time zone for scheduled jobs
}
