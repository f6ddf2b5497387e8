// Package ytdlp mediates access to the yt-dlp CLI used to fetch work items.
//
// It resolves the canonical output filename for an item before anything is
// downloaded — that name is the item key everything downstream is deduped
// on — and downloads media into the cache directory, skipping work that is
// already on disk. Command invocation sits behind a small executor interface
// so tests can script tool behavior without the binary installed.
package ytdlp
