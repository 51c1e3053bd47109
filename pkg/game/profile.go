package game

import (
	"log"

	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName gdata 存储使用的应用名
const DefaultAppName = "rentday"

// Profile 本地持久化数据（设置与战绩）
type Profile struct {
	Settings *SettingsManager
	Records  *RecordManager
}

// OpenProfile 打开本地存储
//
// gdata 初始化失败时进入降级模式：设置与战绩只保存在内存中，游戏照常运行。
// appName 为空时不尝试打开存储（测试与无头运行使用）。
func OpenProfile(appName string) *Profile {
	var manager *gdata.Manager
	if appName != "" {
		m, err := gdata.Open(gdata.Config{AppName: appName})
		if err != nil {
			log.Printf("[Profile] Warning: gdata unavailable: %v (settings will not persist)", err)
		} else {
			manager = m
		}
	}

	settings, _ := NewSettingsManager(manager)
	return &Profile{
		Settings: settings,
		Records:  NewRecordManager(manager),
	}
}
