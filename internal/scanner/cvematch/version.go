package cvematch

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// versionPattern extracts the first dotted numeric run from a technology
// string, e.g. "Apache/2.4.49 (Ubuntu)" -> "2.4.49".
var versionPattern = regexp.MustCompile(`\d+(\.\d+)*`)

// extractVersion returns the first version-looking token in s, or "".
func extractVersion(s string) string {
	return versionPattern.FindString(s)
}

// compareVersions compares dotted numeric versions component-wise, left to
// right, right-padding the shorter one with zero components: "1.2" equals
// "1.2.0". Returns -1, 0, or 1. Non-numeric components are an error; callers
// treat that as "no match".
func compareVersions(a, b string) (int, error) {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}

	for i := 0; i < n; i++ {
		av, err := versionComponent(as, i)
		if err != nil {
			return 0, err
		}
		bv, err := versionComponent(bs, i)
		if err != nil {
			return 0, err
		}
		if av != bv {
			if av < bv {
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, nil
}

func versionComponent(parts []string, i int) (int, error) {
	if i >= len(parts) {
		return 0, nil
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil {
		return 0, fmt.Errorf("non-numeric version component %q", parts[i])
	}
	return v, nil
}
