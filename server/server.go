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

package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mendersoftware/go-lib-micro/config"
	"github.com/mendersoftware/go-lib-micro/log"
	"golang.org/x/sys/unix"

	api "github.com/iotile/deviceota/api/http"
	"github.com/iotile/deviceota/app"
	"github.com/iotile/deviceota/client/catalog"
	"github.com/iotile/deviceota/client/nats"
	"github.com/iotile/deviceota/client/notifications"
	"github.com/iotile/deviceota/client/permissions"
	"github.com/iotile/deviceota/client/registry"
	dconfig "github.com/iotile/deviceota/config"
	"github.com/iotile/deviceota/store"
)

const clientTimeoutSec = 10

// InitAndRun initializes the server and runs it
func InitAndRun(conf config.Reader, dataStore store.DataStore) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Setup(conf.GetBool(dconfig.SettingDebugLog))
	l := log.FromContext(ctx)

	natsClient, err := nats.NewClientWithDefaults(
		conf.GetString(dconfig.SettingNatsURI),
	)
	if err != nil {
		return err
	}

	registryClient := registry.NewClient(
		conf.GetString(dconfig.SettingRegistryURL), clientTimeoutSec,
	)
	catalogClient := catalog.NewClient(
		conf.GetString(dconfig.SettingCatalogURL), clientTimeoutSec,
	)
	permissionsClient := permissions.NewClient(
		conf.GetString(dconfig.SettingPermissionsURL), clientTimeoutSec,
	)
	notificationsClient := notifications.NewClient(
		conf.GetString(dconfig.SettingNotificationsURL),
	)

	otaApp := app.New(
		dataStore,
		registryClient,
		catalogClient,
		permissionsClient,
		notificationsClient,
	)

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- ConsumeReports(ctx, natsClient, otaApp)
	}()

	var listen = conf.GetString(dconfig.SettingListen)
	router, err := api.NewRouter(otaApp, natsClient)
	if err != nil {
		l.Fatal(err)
	}
	srv := &http.Server{
		Addr:    listen,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, unix.SIGINT, unix.SIGTERM)
	select {
	case <-quit:
	case err := <-consumerDone:
		if err != nil {
			l.Errorf("version report consumer stopped: %s", err)
		}
	}

	l.Info("Shutdown Server ...")
	cancel()

	ctxWithTimeout, cancelShutdown := context.WithTimeout(
		context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxWithTimeout); err != nil {
		l.Fatal("Server Shutdown: ", err)
	}

	return nil
}
