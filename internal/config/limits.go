package config

const (
	// MaxProjectNameLength is the maximum length for project names.
	// Limited to 100 to fit in VARCHAR(100) and provide reasonable UX.
	MaxProjectNameLength = 100

	// MaxPromptTitleLength is the maximum length for prompt titles.
	// Same bound as project names for consistency.
	MaxPromptTitleLength = 100

	// MaxPromptContentLength is the maximum length for prompt content.
	MaxPromptContentLength = 10000

	// MaxFilenameLength is the maximum length for attachment filenames.
	// Longer filenames are truncated, not rejected.
	MaxFilenameLength = 255

	// MinUsernameLength is the minimum length for usernames.
	MinUsernameLength = 3

	// MaxUsernameLength is the maximum length for usernames.
	MaxUsernameLength = 50

	// MinPasswordLength is the minimum length for passwords.
	MinPasswordLength = 6

	// MinSearchTermLength is the minimum length for prompt search terms.
	MinSearchTermLength = 2

	// DefaultMaxAttachmentSize is the default cap on attachment content,
	// in bytes (512 KiB).
	DefaultMaxAttachmentSize = 512 * 1024

	// DefaultMaxAttachmentsPerPrompt is the default cap on the number of
	// attachments a single prompt may hold.
	DefaultMaxAttachmentsPerPrompt = 20

	// ContentPreviewLength is how many characters of prompt content list
	// payloads include before truncating.
	ContentPreviewLength = 100

	// DashboardRecentProjects is how many recent projects the dashboard shows.
	DashboardRecentProjects = 5
)
