/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package util

import (
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"
)

var logger = log.New("canis-wallet/retry")

// Logger is a backoff notify func that reports each failed attempt before the next retry.
func Logger(err error, next time.Duration) {
	logger.Warnf("attempt failed, retrying in %s: %v", next, err)
}
