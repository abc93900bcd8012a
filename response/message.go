// Package response contains the JSON reply envelopes used outside the
// rendered HTML pages, such as the rate-limiter's 429 reply.
package response

// Message represents a reply with a status and body.
// Message has the following properties:
// - Status: The status of the message.
// - Body: The body of the message.
type Message struct {
	Status string `json:"status"`
	Body   string `json:"body"`
}
