package yandexid

import "fmt"

// avatarBaseURL is the Yandex avatar CDN base.
const avatarBaseURL = "https://avatars.yandex.net/get-yapic"

// Documented avatar size tokens. The size is interpolated into the URL as
// given; an unknown token is passed through unchanged rather than rejected.
const (
	AvatarSizeIslandsSmall       = "islands-small"        // 28x28
	AvatarSizeIslands34          = "islands-34"           // 34x34
	AvatarSizeIslandsMiddle      = "islands-middle"       // 42x42
	AvatarSizeIslands50          = "islands-50"           // 50x50
	AvatarSizeIslandsRetinaSmall = "islands-retina-small" // 56x56
	AvatarSizeIslands68          = "islands-68"           // 68x68
	AvatarSizeIslands75          = "islands-75"           // 75x75
	AvatarSizeIslandsRetinaMid   = "islands-retina-middle" // 84x84
	AvatarSizeIslandsRetina50    = "islands-retina-50"    // 100x100
	AvatarSizeIslands200         = "islands-200"          // 200x200
)

// AvatarURL formats the CDN URL for a user avatar. An empty size defaults to
// islands-200.
func AvatarURL(avatarID, size string) string {
	if size == "" {
		size = AvatarSizeIslands200
	}
	return fmt.Sprintf("%s/%s/%s", avatarBaseURL, avatarID, size)
}
