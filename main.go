package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"runtime/pprof"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	"github.com/mikeflynn/go-alexa/skillserver"

	"github.com/rking788/warmind-advisors/alexa"
	"github.com/rking788/warmind-advisors/briefing"
	"github.com/rking788/warmind-advisors/bungie"
	"github.com/rking788/warmind-advisors/config"
	"github.com/rking788/warmind-advisors/dialogflow"
	"github.com/rking788/warmind-advisors/monitoring"
	"github.com/rking788/warmind-advisors/storage"
)

var configPath = flag.String("config", "", "path to the environment configuration file")
var memprofile = flag.String("memprofile", "", "write memory profile to this file on interrupt")

// InitEnv builds every component that depends on the deployment configuration and returns
// the applications served by the skill server.
func InitEnv(c *config.EnvConfig) (map[string]interface{}, func()) {

	ConfigureLogging(c.LogLevel, c.LogFilePath)
	raven.SetDSN(c.SentryDSN)
	monitoring.Register()

	clientConfig := c.BungieConfig()
	clientConfig.Transport = bungie.NewHTTPTransport(bungie.NewClientPool(c.LocalClientsPath, glg.Get()))
	client := bungie.NewClient(clientConfig)

	var namer briefing.Namer
	var unknown briefing.UnknownValueRecorder
	cleanup := func() {}

	lookup, err := storage.NewLookupDB("postgres", c.DatabaseURL)
	if err != nil {
		glg.Warnf("Continuing without the manifest database: %s", err.Error())
	} else {
		namer, unknown = lookup, lookup
		cleanup = func() { lookup.Close() }
	}

	players := briefing.NewPlayers(briefing.NewService(client, namer), storage.NewCache(c.RedisURL), unknown)
	skill := alexa.NewSkill(players)
	webhook := dialogflow.NewWebhook(players)

	applications := map[string]interface{}{
		"/echo/warmind-advisors": skillserver.EchoApplication{ // Route
			AppID:          c.AlexaAppID, // Echo App ID from Amazon Dashboard
			OnIntent:       skill.HandleIntent,
			OnLaunch:       skill.HandleIntent,
			OnSessionEnded: skill.HandleSessionEnded,
		},
		"/dialogflow": skillserver.StdApplication{
			Methods: "POST",
			Handler: webhook.ServeHTTP,
		},
		"/metrics": skillserver.StdApplication{
			Methods: "GET",
			Handler: monitoring.Handler().ServeHTTP,
		},
		"/health": skillserver.StdApplication{
			Methods: "GET",
			Handler: healthHandler,
		},
	}

	return applications, cleanup
}

func main() {

	flag.Parse()

	c := config.Load(*configPath)
	applications, cleanup := InitEnv(c)
	defer cleanup()
	defer CloseLogger()

	glg.Printf("Version=%s, BuildDate=%v", Version, BuildDate)

	if *memprofile != "" {
		writeHeapProfileOnInterrupt(*memprofile)
	}

	if c.IsProduction() {
		port := ":" + c.Port
		err := skillserver.RunSSL(applications, port, c.SSLCertPath, c.SSLKeyPath)
		if err != nil {
			raven.CaptureError(err, nil)
			glg.Errorf("Error starting the application! : %s", err.Error())
		}
	} else {
		// Heroku makes us read a random port from the environment and our app is a
		// subdomain of theirs so we get SSL for free
		skillserver.Run(applications, c.Port)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Up"))
}

func writeHeapProfileOnInterrupt(path string) {

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		f, err := os.Create(path)
		if err != nil {
			glg.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
		os.Exit(1)
	}()
}
