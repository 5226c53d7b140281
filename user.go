package yandexid

// Sex is the user's sex as reported by Yandex ID.
type Sex string

// Sex values used by Yandex ID.
const (
	SexMale  Sex = "male"
	SexWoman Sex = "woman"
)

// Phone is a user phone number record.
type Phone struct {
	// ID is the phone's identifier in Yandex.
	ID int64 `json:"id"`

	// Number is the phone number.
	Number string `json:"number"`
}

// User is the Yandex ID user-info response. Beyond the four always-present
// fields, availability depends on the token's scope:
//
//   - openid_identities requires the with_openid_identity parameter
//   - default_email and emails require login:email
//   - default_avatar_id and is_avatar_empty require login:avatar
//   - birthday requires login:birthday
//   - first_name, last_name, display_name, real_name and sex require login:info
//   - default_phone requires login:default_phone
//
// Birthday is kept as a string because Yandex may zero-pad unknown date
// components ("0000-12-31").
type User struct {
	Login    string `json:"login"`
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	PSUID    string `json:"psuid"`

	OpenIDIdentities []string `json:"openid_identities,omitempty"`

	DefaultEmail string   `json:"default_email,omitempty"`
	Emails       []string `json:"emails,omitempty"`

	DefaultAvatarID string `json:"default_avatar_id,omitempty"`
	IsAvatarEmpty   bool   `json:"is_avatar_empty,omitempty"`

	Birthday string `json:"birthday,omitempty"`

	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	RealName    string `json:"real_name,omitempty"`
	Sex         Sex    `json:"sex,omitempty"`

	DefaultPhone *Phone `json:"default_phone,omitempty"`
}
