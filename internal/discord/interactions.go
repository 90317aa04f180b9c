package discord

import (
	"crypto/ed25519"
	"encoding/hex"
)

// Interaction types received on the webhook
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Interaction response types
const (
	ResponsePong            = 1
	ResponseChannelMessage  = 4
	ResponseDeferredMessage = 5
)

// MessageFlagEphemeral marks a response visible only to the invoking user
const MessageFlagEphemeral = 64

// Interaction is an incoming interactions-webhook request
type Interaction struct {
	ID            string           `json:"id"`
	ApplicationID string           `json:"application_id"`
	Type          int              `json:"type"`
	Token         string           `json:"token"`
	GuildID       string           `json:"guild_id,omitempty"`
	ChannelID     string           `json:"channel_id,omitempty"`
	Data          *InteractionData `json:"data,omitempty"`
	Member        *Member          `json:"member,omitempty"`
	User          *User            `json:"user,omitempty"`
}

// InteractionData carries the invoked command and its arguments
type InteractionData struct {
	Name    string              `json:"name"`
	Options []InteractionOption `json:"options,omitempty"`
}

// InteractionOption is one supplied command argument. Value is left untyped
// because the API sends strings, numbers, and booleans through one field.
type InteractionOption struct {
	Name  string      `json:"name"`
	Type  int         `json:"type"`
	Value interface{} `json:"value,omitempty"`
}

// StringOption returns the named string argument, or "" when absent
func (d *InteractionData) StringOption(name string) string {
	if d == nil {
		return ""
	}
	for _, opt := range d.Options {
		if opt.Name == name {
			if s, ok := opt.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

// User represents a Discord user
type User struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
}

// Member represents a guild member, present on interactions from servers
type Member struct {
	User  *User    `json:"user,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// UserID returns the invoking user's ID for both guild and DM interactions
func (i *Interaction) UserID() string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// RoleIDs returns the invoking member's role IDs, nil outside a guild
func (i *Interaction) RoleIDs() []string {
	if i.Member == nil {
		return nil
	}
	return i.Member.Roles
}

// InteractionResponse is the synchronous answer written back to the webhook
type InteractionResponse struct {
	Type int              `json:"type"`
	Data *ResponseMessage `json:"data,omitempty"`
}

// ResponseMessage is the message payload of an interaction response
type ResponseMessage struct {
	Content string `json:"content,omitempty"`
	Flags   int    `json:"flags,omitempty"`
}

// Pong answers a PING verification request
func Pong() *InteractionResponse {
	return &InteractionResponse{Type: ResponsePong}
}

// Ephemeral builds an immediate response visible only to the invoking user
func Ephemeral(content string) *InteractionResponse {
	return &InteractionResponse{
		Type: ResponseChannelMessage,
		Data: &ResponseMessage{Content: content, Flags: MessageFlagEphemeral},
	}
}

// Deferred acknowledges the interaction now so the outcome can be filled in
// later through the webhook edit endpoint
func Deferred(ephemeral bool) *InteractionResponse {
	resp := &InteractionResponse{Type: ResponseDeferredMessage}
	if ephemeral {
		resp.Data = &ResponseMessage{Flags: MessageFlagEphemeral}
	}
	return resp
}

// VerifySignature checks the Ed25519 signature Discord attaches to every
// webhook request. publicKey is the application's hex-encoded key; the
// signed message is the timestamp header concatenated with the raw body.
func VerifySignature(publicKey, signature, timestamp string, body []byte) bool {
	key, err := hex.DecodeString(publicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return false
	}
	sig, err := hex.DecodeString(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	msg := make([]byte, 0, len(timestamp)+len(body))
	msg = append(msg, timestamp...)
	msg = append(msg, body...)
	return ed25519.Verify(ed25519.PublicKey(key), msg, sig)
}
