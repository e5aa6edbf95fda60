package models

// ScanSummary holds the aggregated result of one full scan of a log
// directory by the worker pool.
type ScanSummary struct {
	TotalFiles   int   // TotalFiles is the number of file indices handed to the pool.
	FilesScanned int   // FilesScanned is the number of files read to completion.
	FilesMissing int   // FilesMissing is the number of indices with no readable file.
	Lines        int64 // Lines is the total number of lines read across all files.
	Distinct     int64 // Distinct is the number of unique addresses observed.
}
