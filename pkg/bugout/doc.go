// Package bugout is a typed client for the Bugout API.
//
// Bugout is served by two sub-services: brood handles identity (users,
// tokens, groups, applications, resources) and spire handles journals
// (journals, entries, tags, search, humbug integrations). A Client is
// pinned to one base URL per sub-service and exposes every operation as
// a flat method; the per-resource clients underneath it (UserClient,
// GroupClient, ResourceClient, JournalClient, HumbugClient) are also
// usable on their own.
//
// Construction:
//
//	client, err := bugout.New(bugout.Config{
//		BroodAPIURL: "https://auth.bugout.dev",
//		SpireAPIURL: "https://spire.bugout.dev",
//		Timeout:     10 * time.Second,
//	})
//
// or, taking every setting from the environment:
//
//	client, err := bugout.NewFromEnv()
//
// Tokens are caller-supplied bearer credentials, passed per call and
// forwarded verbatim; this client never mints or inspects them. Every
// method performs exactly one blocking HTTP round-trip and classifies
// failures into the pkg/rest error taxonomy. There is no retry logic
// and no shared mutable state: a Client is safe for concurrent use.
package bugout
