// Package gemini wraps the Google generative AI SDK for the generation step:
// uploading media, polling remote file readiness, prompting against an
// uploaded file or plain text, and deleting remote files afterwards.
//
// The client is deliberately thin. Poll loops, retry policy, and failure
// classification belong to the pipeline; this package only shapes requests,
// bounds them with the configured timeout, and flattens responses to text.
package gemini
