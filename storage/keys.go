package storage

// Fixed namespaced collection keys, one per entity kind plus the current
// session user. Each key holds one JSON blob; there is no cross-key
// atomicity and callers must not assume any.
const (
	UsersKey       = "messenger_users"
	ServersKey     = "messenger_servers"
	DMsKey         = "messenger_dms"
	MessagesKey    = "messenger_messages"
	CurrentUserKey = "messenger_current_user"
)
