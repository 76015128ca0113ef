package codesign

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reDesignID  = regexp.MustCompile(`/design/(\d+)`)
	reImageSize = regexp.MustCompile(`(\d+)px x (\d+)px`)
	reThumbnail = regexp.MustCompile(`/thumbnail/\d+x\d+`)
)

// ParseDesignID pulls the numeric design id out of a design page URL such
// as https://codesign.qq.com/app/design/123456/board.
func ParseDesignID(pageURL string) (string, bool) {
	m := reDesignID.FindStringSubmatch(pageURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParseImageSize reads a slice size label like "750px x 1624px".
func ParseImageSize(label string) (width, height int, ok bool) {
	m := reImageSize.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// ResizeThumbnail rewrites the /thumbnail/WxH segment of a slice URL.
// URLs without one are returned unchanged.
func ResizeThumbnail(thumbURL string, width, height int) string {
	return reThumbnail.ReplaceAllLiteralString(thumbURL, fmt.Sprintf("/thumbnail/%dx%d", width, height))
}

// SliceURL combines the two: it sizes thumbURL to the selected label.
func SliceURL(thumbURL, sizeLabel string) (string, bool) {
	w, h, ok := ParseImageSize(sizeLabel)
	if !ok || thumbURL == "" {
		return "", false
	}
	return ResizeThumbnail(thumbURL, w, h), true
}
