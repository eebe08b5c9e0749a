// Copyright 2023 Arch Systems Inc.
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package config

import (
	"github.com/mendersoftware/go-lib-micro/config"
)

const (
	// SettingListen is the config key for the listen address
	SettingListen = "listen"
	// SettingListenDefault is the default value for the listen address
	SettingListenDefault = ":8080"

	// SettingNatsURI is the config key for the nats uri
	SettingNatsURI = "nats_uri"
	// SettingNatsURIDefault is the default value for the nats uri
	SettingNatsURIDefault = "nats://localhost:4222"

	// SettingMongo is the config key for the mongo URL
	SettingMongo = "mongo_url"
	// SettingMongoDefault is the default value for the mongo URL
	SettingMongoDefault = "mongodb://iotile-mongo:27017"

	// SettingDbName is the config key for the mongo database name
	SettingDbName = "mongo_dbname"
	// SettingDbNameDefault is the default value for the mongo database name
	SettingDbNameDefault = "deviceota"

	// SettingDbSSL is the config key for the mongo SSL setting
	SettingDbSSL = "mongo_ssl"
	// SettingDbSSLDefault is the default value for the mongo SSL setting
	SettingDbSSLDefault = false

	// SettingDbSSLSkipVerify is the config key for the mongo SSL skip verify setting
	SettingDbSSLSkipVerify = "mongo_ssl_skipverify"
	// SettingDbSSLSkipVerifyDefault is the default value for the mongo SSL skip verify setting
	SettingDbSSLSkipVerifyDefault = false

	// SettingDbUsername is the config key for the mongo username
	SettingDbUsername = "mongo_username"

	// SettingDbPassword is the config key for the mongo password
	SettingDbPassword = "mongo_password"

	// SettingDebugLog is the config key for the turning on the debug log
	SettingDebugLog = "debug_log"
	// SettingDebugLogDefault is the default value for the debug log enabling
	SettingDebugLogDefault = false

	// SettingRegistryURL is the config key for the device registry url
	SettingRegistryURL = "registry_url"
	// SettingRegistryURLDefault is the default value for the device registry url
	SettingRegistryURLDefault = "http://iotile-device-registry:8080"

	// SettingCatalogURL is the config key for the software catalog url
	SettingCatalogURL = "catalog_url"
	// SettingCatalogURLDefault is the default value for the software catalog url
	SettingCatalogURLDefault = "http://iotile-software-catalog:8080"

	// SettingPermissionsURL is the config key for the permissions service url
	SettingPermissionsURL = "permissions_url"
	// SettingPermissionsURLDefault is the default value for the permissions service url
	SettingPermissionsURLDefault = "http://iotile-permissions:8080"

	// SettingNotificationsURL is the config key for the notifications service url
	SettingNotificationsURL = "notifications_url"
	// SettingNotificationsURLDefault is the default value for the notifications service url
	SettingNotificationsURLDefault = "http://iotile-notifications:8080"
)

var (
	// Defaults are the default configuration settings
	Defaults = []config.Default{
		{Key: SettingListen, Value: SettingListenDefault},
		{Key: SettingNatsURI, Value: SettingNatsURIDefault},
		{Key: SettingMongo, Value: SettingMongoDefault},
		{Key: SettingDbName, Value: SettingDbNameDefault},
		{Key: SettingDbSSL, Value: SettingDbSSLDefault},
		{Key: SettingDbSSLSkipVerify, Value: SettingDbSSLSkipVerifyDefault},
		{Key: SettingDebugLog, Value: SettingDebugLogDefault},
		{Key: SettingRegistryURL, Value: SettingRegistryURLDefault},
		{Key: SettingCatalogURL, Value: SettingCatalogURLDefault},
		{Key: SettingPermissionsURL, Value: SettingPermissionsURLDefault},
		{Key: SettingNotificationsURL, Value: SettingNotificationsURLDefault},
	}
)
