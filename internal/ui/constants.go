package ui

// Window
const (
	AppID        = "com.ytget.yt-audio"
	AppName      = "Youtube to Spotify Converter"
	WindowWidth  = 520
	WindowHeight = 640
)

// Labels
const (
	LabelEnterURL       = "Enter URL:"
	LabelSelectPlatform = "Select Platform:"
	LabelDownload       = "Download Audio"
	LabelReveal         = "Show in Folder"
	LabelInputButton    = "Select MP3 Conversion Directory"
	LabelOutputButton   = "Select Output Directory for WAV files"
	LabelConvert        = "Convert MP3 to WAV"
	URLPlaceholder      = "https://www.youtube.com/watch?v=..."
)

// Rename dialog
const (
	RenameTitle        = "Rename"
	RenameConfirm      = "Rename"
	RenameDismiss      = "Keep Name"
	RenamePromptFormat = "Enter a new name for %s (leave blank to keep the original name):"
	DialogDismiss      = "OK"
)

// Layout sizing
const (
	ThumbnailSize float32 = 200
)
