package sources

import "github.com/spf13/viper"

// Setting keys read by the sources. Environment overrides replace "." with "_"
// (UNSPLASH_KEYWORD for unsplash.keyword).
const (
	SettingDesktopperAllowUnsafe = "desktopper.allow_unsafe"

	SettingUnsplashKeyword      = "unsplash.keyword"
	SettingUnsplashUsername     = "unsplash.username"
	SettingUnsplashCollections  = "unsplash.collections"
	SettingUnsplashImageWidth   = "unsplash.image_width"
	SettingUnsplashImageHeight  = "unsplash.image_height"
	SettingUnsplashFeaturedOnly = "unsplash.featured_only"
	SettingUnsplashUTMSource    = "unsplash.utm_source"

	SettingWallhavenKeyword         = "wallhaven.keyword"
	SettingWallhavenResolutions     = "wallhaven.resolutions"
	SettingWallhavenCategoryGeneral = "wallhaven.category_general"
	SettingWallhavenCategoryAnime   = "wallhaven.category_anime"
	SettingWallhavenCategoryPeople  = "wallhaven.category_people"
	SettingWallhavenAllowSFW        = "wallhaven.allow_sfw"
	SettingWallhavenAllowSketchy    = "wallhaven.allow_sketchy"

	SettingGenericRequestURL   = "generic_json.request_url"
	SettingGenericResponsePath = "generic_json.response_path"
	SettingGenericURLPrefix    = "generic_json.url_prefix"
)

// Defaults returns the default value of every setting.
func Defaults() map[string]any {
	return map[string]any{
		SettingDesktopperAllowUnsafe: false,

		SettingUnsplashKeyword:      "",
		SettingUnsplashUsername:     "",
		SettingUnsplashCollections:  "",
		SettingUnsplashImageWidth:   1920,
		SettingUnsplashImageHeight:  1080,
		SettingUnsplashFeaturedOnly: false,
		SettingUnsplashUTMSource:    defaultUTMSource,

		SettingWallhavenKeyword:         "",
		SettingWallhavenResolutions:     "1920x1200, 2560x1440",
		SettingWallhavenCategoryGeneral: true,
		SettingWallhavenCategoryAnime:   true,
		SettingWallhavenCategoryPeople:  true,
		SettingWallhavenAllowSFW:        true,
		SettingWallhavenAllowSketchy:    true,

		SettingGenericRequestURL:   "",
		SettingGenericResponsePath: "",
		SettingGenericURLPrefix:    "",
	}
}

// RegisterDefaults installs Defaults on v.
func RegisterDefaults(v *viper.Viper) {
	for key, val := range Defaults() {
		v.SetDefault(key, val)
	}
}

// NewSettings returns a viper instance holding only the defaults.
func NewSettings() *viper.Viper {
	v := viper.New()
	RegisterDefaults(v)
	return v
}
