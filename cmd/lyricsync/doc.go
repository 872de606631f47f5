// Package main hosts the lyricsync CLI.
//
// The Cobra command tree covers the whole flow: fetch downloads and tags
// files through yt-dlp, embed tags local files, convert turns subtitles into
// LRC text, and verify checks that files carry the expected lyrics.
// Configuration and logging are resolved once in the root command so
// subcommands only wire flags to the internal packages.
package main
