package mailbox

import "encoding/json"

// VerificationSubject is the subject line of the registration verification
// email sent by the target site.
const VerificationSubject = "Verify email"

// Message is one mailbox message as returned by the provider.
type Message struct {
	Subject string `json:"mail_subject"`
	Text    string `json:"mail_text"`
}

// normalizeMessages decodes a provider response into a uniform slice.
// Depending on mailbox state the provider returns a JSON list of messages,
// a single message object, or an error object ("no messages" and friends);
// the last case yields an empty slice.
func normalizeMessages(body []byte) []Message {
	var list []Message
	if err := json.Unmarshal(body, &list); err == nil {
		return list
	}

	var single Message
	if err := json.Unmarshal(body, &single); err == nil {
		if single.Subject != "" || single.Text != "" {
			return []Message{single}
		}
	}

	return nil
}
