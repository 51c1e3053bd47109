package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RunRecords 历史战绩
type RunRecords struct {
	BestRound  int    `yaml:"bestRound"`  // 坚持到的最高天数
	BestScore  int    `yaml:"bestScore"`  // 结束时的最高分数
	RunsPlayed int    `yaml:"runsPlayed"` // 已完成的局数
	LastRound  int    `yaml:"lastRound"`
	LastScore  int    `yaml:"lastScore"`
	LastReason string `yaml:"lastReason"`
}

// RecordManager 战绩管理器
// 与 SettingsManager 相同的 gdata 存储方式，gdataManager 为 nil 时只保存在内存
type RecordManager struct {
	gdataManager *gdata.Manager
	records      RunRecords
}

const (
	recordsObject   = "records"
	recordsProperty = "runs"
)

// NewRecordManager 创建战绩管理器，加载失败时从空战绩开始
func NewRecordManager(gdataManager *gdata.Manager) *RecordManager {
	rm := &RecordManager{gdataManager: gdataManager}
	if err := rm.Load(); err != nil {
		log.Printf("[RecordManager] Warning: Failed to load records: %v (starting fresh)", err)
	}
	return rm
}

// Load 从 gdata 加载战绩
func (rm *RecordManager) Load() error {
	rm.records = RunRecords{}
	if rm.gdataManager == nil || !rm.gdataManager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := rm.gdataManager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	var loaded RunRecords
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal records: %w", err)
	}
	rm.records = loaded
	return nil
}

// Save 保存战绩到 gdata
func (rm *RecordManager) Save() error {
	if rm.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(&rm.records)
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := rm.gdataManager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}
	return nil
}

// Records 当前战绩副本
func (rm *RecordManager) Records() RunRecords {
	return rm.records
}

// RecordRun 记录一局结束并立即保存
//
// 返回：
//   - bool: 是否刷新了最高天数或最高分
//   - error: 保存失败（内存中的战绩已更新）
func (rm *RecordManager) RecordRun(round, score int, reason string) (bool, error) {
	r := &rm.records
	r.RunsPlayed++
	r.LastRound, r.LastScore, r.LastReason = round, score, reason

	newBest := false
	if round > r.BestRound {
		r.BestRound = round
		newBest = true
	}
	if score > r.BestScore {
		r.BestScore = score
		newBest = true
	}

	log.Printf("[RecordManager] 第 %d 局: 第 %d 天, 分数 %d (%s)", r.RunsPlayed, round, score, reason)
	return newBest, rm.Save()
}
