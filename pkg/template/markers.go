/*
Copyright Scoir Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package template

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// A marker is a whole string value such as "@{now}" or "@{currentDate(-19)}".
var markerPattern = regexp.MustCompile(`^@\{(\w+)(?:\((\S*)\))?\}$`)

type markerFunc func(now time.Time, param string) (int64, error)

var markers = map[string]markerFunc{
	"now": func(now time.Time, _ string) (int64, error) {
		return now.Unix(), nil
	},
	"currentDate": func(now time.Time, param string) (int64, error) {
		offset, err := strconv.Atoi(param)
		if err != nil {
			return 0, errors.Wrapf(err, "invalid currentDate offset %q", param)
		}

		d := now.UTC().AddDate(offset, 0, 0)

		return int64(d.Year()*10000 + int(d.Month())*100 + d.Day()), nil
	},
}

// ApplyMarkers returns tree with every marker string replaced by its computed integer.
// now is the unix time in seconds, currentDate(n) is today shifted by n years as YYYYMMDD.
func ApplyMarkers(tree interface{}, now time.Time) (interface{}, error) {
	switch v := tree.(type) {
	case map[string]interface{}:
		for k, item := range v {
			out, err := ApplyMarkers(item, now)
			if err != nil {
				return nil, err
			}

			v[k] = out
		}

		return v, nil
	case []interface{}:
		for i, item := range v {
			out, err := ApplyMarkers(item, now)
			if err != nil {
				return nil, err
			}

			v[i] = out
		}

		return v, nil
	case string:
		m := markerPattern.FindStringSubmatch(v)
		if m == nil {
			return v, nil
		}

		f, ok := markers[m[1]]
		if !ok {
			return nil, errors.Errorf("unknown template marker %s", m[1])
		}

		n, err := f(now, m[2])
		if err != nil {
			return nil, err
		}

		return n, nil
	}

	return tree, nil
}
