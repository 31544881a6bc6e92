package message

const (
	NotAuthorized      = "Not authorized."
	InvalidCredentials = "Invalid credentials."
	InvalidInput       = "Invalid input."
	UnknownField       = "Unknown field in payload."
	UserExists         = "User already exists."
	UserNotFound       = "User not found."
	ProfileNotFound    = "Profile not found."
	Registered         = "Registered."
	LoggedIn           = "Logged in."
	ProfileSaved       = "Profile saved."
	APIRunning         = "DevConnector API is running!"

	FmtErrStatusCode = "res.StatusCode = %d, want: %d"
)
