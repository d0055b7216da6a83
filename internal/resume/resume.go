// Package resume decides how the resume document is previewed: it probes
// whether the document is retrievable as a PDF, picks a render mode from
// the probe verdict and the client platform, and triggers downloads.
package resume

import "strings"

// Fixed locations of the resume assets, relative to the site origin.
const (
	DocumentPath  = "/static/resume/Zach_Resume.pdf"
	ThumbnailPath = "/static/resume/Zach_Resume_thumb.png"
	DownloadPath  = "/resume/download"
	Filename      = "Zach_Resume.pdf"
	ContentType   = "application/pdf"
)

// Verdict is the outcome of probing the document.
type Verdict int

const (
	// Unknown means verification was inconclusive. It is also the value
	// before any probe has resolved.
	Unknown Verdict = iota
	// Confirmed means the document is retrievable and is a PDF.
	Confirmed
	// Rejected means the server answered but the document is missing or
	// is not a PDF.
	Rejected
)

func (v Verdict) String() string {
	switch v {
	case Unknown:
		return "unknown"
	case Confirmed:
		return "confirmed"
	case Rejected:
		return "rejected"
	}
	return "invalid"
}

// Mode is how the preview dialog presents the document.
type Mode int

const (
	// InlineEmbed renders the document in place, with the fallback block
	// underneath for runtimes that cannot embed.
	InlineEmbed Mode = iota
	// ThumbnailFallback shows the thumbnail and actions because the
	// document was rejected.
	ThumbnailFallback
	// PlatformFallback shows the thumbnail and actions because the client
	// platform does not embed documents reliably.
	PlatformFallback
)

func (m Mode) String() string {
	switch m {
	case InlineEmbed:
		return "inline"
	case ThumbnailFallback:
		return "thumbnail"
	case PlatformFallback:
		return "platform"
	}
	return "invalid"
}

// SelectMode maps a verdict and the constrained-platform flag to a render
// mode. Rejection always wins; otherwise the platform flag decides, and an
// unknown verdict is rendered optimistically like a confirmed one.
func SelectMode(v Verdict, constrained bool) Mode {
	switch v {
	case Rejected:
		return ThumbnailFallback
	case Confirmed, Unknown:
		if constrained {
			return PlatformFallback
		}
		return InlineEmbed
	}
	return ThumbnailFallback
}

// Preview is the view model shared by the web dialog and the terminal
// dialog.
type Preview struct {
	Mode         Mode
	Verdict      Verdict
	DocumentURL  string
	ThumbnailURL string
	DownloadURL  string
	Filename     string
	// Message explains the fallback block. InlineEmbed carries one too,
	// shown only when the runtime cannot embed.
	Message string
}

// Inline reports whether the dialog should attempt an inline embed.
func (p Preview) Inline() bool { return p.Mode == InlineEmbed }

const (
	msgRejected = "Preview unavailable. You can still download the resume using the button below."
	msgPlatform = "This device may not display PDFs inline. Open or download instead."
	msgNoEmbed  = "This viewer cannot display the PDF inline. You can download it instead."
)

// NewPreview builds the view model. origin is prefixed to every asset
// path; pass "" for same-origin relative links.
func NewPreview(v Verdict, constrained bool, origin string) Preview {
	origin = strings.TrimRight(origin, "/")
	p := Preview{
		Mode:         SelectMode(v, constrained),
		Verdict:      v,
		DocumentURL:  origin + DocumentPath,
		ThumbnailURL: origin + ThumbnailPath,
		DownloadURL:  origin + DownloadPath,
		Filename:     Filename,
	}

	switch p.Mode {
	case ThumbnailFallback:
		p.Message = msgRejected
	case PlatformFallback:
		p.Message = msgPlatform
	default:
		p.Message = msgNoEmbed
	}
	return p
}

// Trigger saves a resource under a suggested file name. Implementations
// are best effort: when the name cannot be forced they open the resource
// for viewing instead, and they never report failure to the caller.
type Trigger interface {
	Trigger(locator, filename string)
}
