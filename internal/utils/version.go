package utils

import (
	"fmt"
	"strconv"
	"strings"
)

/**
 *	Version number following SemVer ordering
 */
type VersionNumber struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Micro int `json:"micro"`
}

/**
 * Parse a version string into a VersionNumber
 * @param {string} versionStr - Version in "major.minor.micro" form, optional leading "v" (e.g. "v22.1.0")
 * @returns {*VersionNumber} Parsed version, nil on invalid input
 * @description
 * - Accepts two- or three-part versions; missing parts default to zero
 * @example
 * ver := ParseVersionNumber("v20.11.1")  // returns &VersionNumber{Major:20, Minor:11, Micro:1}
 */
func ParseVersionNumber(versionStr string) *VersionNumber {
	versionStr = strings.TrimPrefix(strings.TrimSpace(versionStr), "v")
	vers := strings.Split(versionStr, ".")
	if len(vers) < 2 || len(vers) > 3 {
		return nil
	}

	var ver VersionNumber
	var err error
	ver.Major, err = strconv.Atoi(vers[0])
	if err != nil {
		return nil
	}
	ver.Minor, err = strconv.Atoi(vers[1])
	if err != nil {
		return nil
	}
	if len(vers) == 3 {
		ver.Micro, err = strconv.Atoi(vers[2])
		if err != nil {
			return nil
		}
	}
	return &ver
}

func PrintVersion(ver VersionNumber) string {
	return fmt.Sprintf("%d.%d.%d", ver.Major, ver.Minor, ver.Micro)
}

/**
 *	Compare versions; negative when local is older than remote
 */
func CompareVersion(local, remote VersionNumber) int {
	if local.Major != remote.Major {
		return local.Major - remote.Major
	}
	if local.Minor != remote.Minor {
		return local.Minor - remote.Minor
	}
	return local.Micro - remote.Micro
}
