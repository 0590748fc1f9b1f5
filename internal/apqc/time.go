// Copyright (C) 2019-2026, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package apqc

import "time"

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
