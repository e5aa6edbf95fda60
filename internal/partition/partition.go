package partition

import "github.com/UnknownOlympus/tally/internal/models"

// ComputeRange returns the inclusive range of file indices assigned to the
// worker at workerIndex (0-based). Files are numbered 1..totalFiles and split
// evenly by truncating division; the final worker additionally absorbs the
// remainder, so the union of all ranges covers every index exactly once.
//
// When totalWorkers exceeds totalFiles every non-final worker receives an
// empty range and the final worker takes the whole of [1, totalFiles]. That
// imbalance is a known property of the scheme and is kept for compatibility
// with existing file sets; coverage, not balance, is the contract here.
func ComputeRange(workerIndex, totalWorkers, totalFiles int) models.FileRange {
	perWorker := totalFiles / totalWorkers
	start := workerIndex*perWorker + 1

	if workerIndex == totalWorkers-1 {
		return models.FileRange{Start: start, End: totalFiles}
	}
	return models.FileRange{Start: start, End: (workerIndex + 1) * perWorker}
}

// Ranges computes the range for every worker in one call.
func Ranges(totalWorkers, totalFiles int) []models.FileRange {
	ranges := make([]models.FileRange, totalWorkers)
	for i := range ranges {
		ranges[i] = ComputeRange(i, totalWorkers, totalFiles)
	}
	return ranges
}
