package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	TemplateFileError
	ConfigFileError
	WriteFileError

	// Logging errors
	OpenLogFileError

	// Publishers errors
	PublishersConfigError
	PublishersInvalidError
	PublishersNotFoundError

	// GBIF API errors
	GBIFRequestError
	GBIFStatusError
	GBIFDecodeError

	// Download errors
	DownloadSubmitError
	DownloadFailedError
	DownloadTimeoutError
	DownloadFetchError
	DownloadCancelledError
	DownloadAllFailedError

	// Reconcile errors
	ReconcileArchiveError
	ReconcileExtractError
	ReconcileReadTableError
	ReconcileMissingColumnError
	ReconcileWriteError
	ReconcileAllFailedError
	ReconcileNoArchivesError
	ReconcileCancelledError

	// Literature errors
	LiteratureInputError
	LiteratureSearchError
	LiteratureWorkbookError
	LiteratureAllFailedError
	LiteratureCancelledError
)
