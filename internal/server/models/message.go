package models

// Message is one relayed mail item. Body is ciphertext and stays opaque to
// the server: nothing on the server side ever decodes it. CreatedAt is
// server-assigned Unix nanoseconds, strictly increasing within a process, so
// inbox order is stable even under identical wall-clock reads.
//
// A message is immutable once appended to the recipient's inbox.
type Message struct {
	ID        string
	From      string
	To        string
	Title     string
	Body      []byte
	CreatedAt int64
}
