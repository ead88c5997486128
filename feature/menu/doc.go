// Package menu implements the interactive command loop over a bucket.
//
// The loop displays a numbered menu, collects the parameters of the chosen
// operation, calls the objects.Store synchronously and prints the outcome:
//
//	1. Upload file    (local path, then key)
//	2. Download file  (listing, then key, then local path)
//	3. Delete file    (listing, then key)
//	4. List files
//	5. Exit
//
// Invalid selections and empty answers are reported and re-prompted. Store
// failures, including panics, are reported and the menu is shown again; the
// only ways out are Exit, end of input or a cancelled context.
package menu
