package services

import "time"

// timeNow is a seam for tests.
var timeNow = time.Now
