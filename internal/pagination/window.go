// Package pagination computes the bounded page-number window rendered under
// paginated comment lists.
package pagination

// WindowSize is the maximum number of page links shown at once.
const WindowSize = 5

// Window returns the contiguous run of page numbers to render for the given
// current page. The window is centered on currentPage and clamped to
// [1, totalPages]; when clamping hits an edge the window shifts instead of
// shrinking, so it stays WindowSize long whenever totalPages allows.
// totalPages of zero yields an empty window.
func Window(currentPage, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	start := currentPage - WindowSize/2
	if start < 1 {
		start = 1
	}
	end := start + WindowSize - 1
	if end > totalPages {
		end = totalPages
		start = end - WindowSize + 1
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}
