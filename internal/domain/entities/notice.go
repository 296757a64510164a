package entities

// NoticeLevel classifies a user-visible notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a single message shown to the user. Every user-triggered action
// emits at most one.
type Notice struct {
	Level   NoticeLevel
	Message string
}
