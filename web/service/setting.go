// Package service implements the business logic of the EcoCart storefront.
package service

import (
	"strconv"
	"time"

	"github.com/ecocart/ecocart/database"
	"github.com/ecocart/ecocart/database/model"
	"github.com/ecocart/ecocart/util/common"
	"github.com/ecocart/ecocart/util/random"
	"github.com/ecocart/ecocart/web/entity"
)

var defaultValueMap = map[string]string{
	"webListen":     "",
	"webDomain":     "",
	"webPort":       "8080",
	"webCertFile":   "",
	"webKeyFile":    "",
	"secret":        "",
	"sessionMaxAge": "1440",
	"pageSize":      "20",
	"timeLocation":  "Asia/Kolkata",
}

// SettingService reads and writes runtime settings stored in the database,
// falling back to defaults for unset keys.
type SettingService struct{}

func (s *SettingService) getSetting(key string) (*model.Setting, error) {
	db := database.GetDB()
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) saveSetting(key string, value string) error {
	setting, err := s.getSetting(key)
	db := database.GetDB()
	if database.IsNotFound(err) {
		return db.Create(&model.Setting{
			Key:   key,
			Value: value,
		}).Error
	} else if err != nil {
		return err
	}
	setting.Key = key
	setting.Value = value
	return db.Save(setting).Error
}

func (s *SettingService) getString(key string) (string, error) {
	setting, err := s.getSetting(key)
	if database.IsNotFound(err) {
		value, ok := defaultValueMap[key]
		if !ok {
			return "", common.NewErrorf("unknown setting key: %v", key)
		}
		return value, nil
	} else if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *SettingService) getInt(key string) (int, error) {
	str, err := s.getString(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(str)
}

func (s *SettingService) GetListen() (string, error) {
	return s.getString("webListen")
}

func (s *SettingService) GetWebDomain() (string, error) {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) GetCertFile() (string, error) {
	return s.getString("webCertFile")
}

func (s *SettingService) GetKeyFile() (string, error) {
	return s.getString("webKeyFile")
}

// GetSecret returns the cookie-signing secret, generating and persisting
// one on first use so sessions survive restarts.
func (s *SettingService) GetSecret() (string, error) {
	secret, err := s.getString("secret")
	if err != nil {
		return "", err
	}
	if secret == "" {
		secret = random.Seq(32)
		if err := s.saveSetting("secret", secret); err != nil {
			return "", err
		}
	}
	return secret, nil
}

// GetSessionMaxAge returns the session lifetime in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	l, err := s.getString("timeLocation")
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(l)
	if err != nil {
		defaultLocation := defaultValueMap["timeLocation"]
		location, err = time.LoadLocation(defaultLocation)
	}
	return location, err
}

// GetAllSetting returns the settings aggregate for diagnostics.
func (s *SettingService) GetAllSetting() (*entity.AllSetting, error) {
	allSetting := &entity.AllSetting{}
	var err error
	if allSetting.WebListen, err = s.GetListen(); err != nil {
		return nil, err
	}
	if allSetting.WebDomain, err = s.GetWebDomain(); err != nil {
		return nil, err
	}
	if allSetting.WebPort, err = s.GetPort(); err != nil {
		return nil, err
	}
	if allSetting.WebCertFile, err = s.GetCertFile(); err != nil {
		return nil, err
	}
	if allSetting.WebKeyFile, err = s.GetKeyFile(); err != nil {
		return nil, err
	}
	if allSetting.SessionMaxAge, err = s.GetSessionMaxAge(); err != nil {
		return nil, err
	}
	if allSetting.PageSize, err = s.GetPageSize(); err != nil {
		return nil, err
	}
	if allSetting.TimeLocation, err = s.getString("timeLocation"); err != nil {
		return nil, err
	}
	return allSetting, nil
}
