package usecase

// Export unexported functions for testing
var (
	DownloadFileForTest      = downloadFile
	ExtractArchiveForTest    = extractArchive
	StepDownDirectoryForTest = stepDownDirectory
	CleanEntryPathForTest    = cleanEntryPath
	CommonRootForTest        = commonRoot
	UnitPathForTest          = unitPath
	PlanUnitsForTest         = planUnits
)
