// Package discord integrates with Discord over plain REST: announcing new
// shows to a channel, registering slash commands, and answering the
// interactions webhook.
//
// There is no gateway connection. Discord pushes commands to the HTTP
// server as Ed25519-signed webhook requests; slow commands are acknowledged
// with a deferred response and finished through the webhook edit endpoint.
// The client honors rate-limit responses with capped retries.
package discord
