package database

import (
	"fmt"
	"log"

	"wechat-ai-bot/config"
	"wechat-ai-bot/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// 把驱动的 1062 等错误翻译成 gorm.ErrDuplicatedKey，
		// 对话去重依赖唯一键冲突的识别
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	if err := DB.AutoMigrate(
		&models.Message{},
		&models.Counter{},
		&models.AdminUser{},
	); err != nil {
		return err
	}

	// 初始化计数器行（仅当表为空时）
	var counterCount int64
	DB.Model(&models.Counter{}).Count(&counterCount)
	if counterCount == 0 {
		_ = DB.Create(&models.Counter{Count: 0}).Error
	}

	// 初始化后台管理员账号（仅当表为空时，密码来自配置）
	var adminCount int64
	DB.Model(&models.AdminUser{}).Count(&adminCount)
	if adminCount == 0 && cfg.Admin.Username != "" {
		admin := models.AdminUser{Username: cfg.Admin.Username}
		if err := admin.SetPassword(cfg.Admin.Password); err != nil {
			return fmt.Errorf("初始化管理员密码失败: %w", err)
		}
		if err := DB.Create(&admin).Error; err != nil {
			return fmt.Errorf("初始化管理员账号失败: %w", err)
		}
		log.Printf("已创建默认管理员账号: %s", cfg.Admin.Username)
	}

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
