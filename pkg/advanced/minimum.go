package advanced

// FindMinimum returns the smallest element, or 0 for an empty slice.
//
// BUG: the running minimum is re-assigned from nums[0] instead of nums[i], so
// it never moves off the first element. For {50, 10, 80, 5, 90, 3, 100} it
// returns 50.
func FindMinimum(nums []int) int {
	if len(nums) == 0 {
		return 0
	}

	lowest := nums[0]
	for i := 1; i < len(nums); i++ {
		if nums[i] < lowest { // BREAKPOINT: find-minimum watch=i,lowest,nums[i]
			lowest = nums[0]
		}
	}
	return lowest
}

// FindMinimumFixed is FindMinimum comparing with and assigning the running minimum.
func FindMinimumFixed(nums []int) int {
	if len(nums) == 0 {
		return 0
	}

	lowest := nums[0]
	for i := 1; i < len(nums); i++ {
		if nums[i] < lowest {
			lowest = nums[i]
		}
	}
	return lowest
}
