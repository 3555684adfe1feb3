// Package download fetches remote audio as MP3 through yt-dlp and reports byte
// progress as a percentage.
package download
