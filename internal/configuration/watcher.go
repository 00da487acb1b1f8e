package configuration

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch calls onChange with the path of the config file read by ReadConfigFile
// whenever it is written or replaced on disk.
func Watch(onChange func(path string)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(e.Name)
	})
	viper.WatchConfig()
}
