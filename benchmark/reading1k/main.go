package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

var maxUsers int = 1000
var httpHostPort string = "127.0.0.1:1080"

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))

var labels = []string{"good", "slouching", "leaning", "tilting", "unknown"}

func main() {
	userIDs := make([]string, maxUsers)
	deviceIDs := make([]string, maxUsers)
	for i := 0; i < maxUsers; i++ {
		userIDs[i] = uuid.NewString()
		deviceIDs[i] = uuid.NewString()
	}
	fmt.Printf("generated %v user/device ID pairs\n", maxUsers)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxUsers; i++ {
		i := i
		wg.Add(1)
		go func() {
			pairDevice(deviceIDs[i], userIDs[i])
			fmt.Printf("\rpaired device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rpaired %v devices: used time=%v seconds, throughput=%v action/second\n",
		maxUsers, usedTime.Seconds(), float64(maxUsers)/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxUsers; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(deviceIDs[i], userIDs[i])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v users: used time=%v seconds, throughput=%v action/second\n",
		maxUsers, usedTime.Seconds(), float64(maxUsers*3)/usedTime.Seconds(),
	)
}

func rndFloat64(min, max float64, decimal int) float64 {
	val := min + rnd.Float64()*(max-min)
	multiplier := float64(math.Pow10(decimal))
	return float64(math.Round(float64(val)*float64(multiplier))) / multiplier
}

func postJSON(path string, payload any) (*http.Response, error) {
	jsonData, _ := json.Marshal(payload)
	return http.Post(fmt.Sprintf("http://%s%s", httpHostPort, path), "application/json", bytes.NewBuffer(jsonData))
}

func pairDevice(deviceID, userID string) {
	resp, err := postJSON(fmt.Sprintf("/devices/%s/pair", deviceID), map[string]string{
		"user_id": userID,
	})
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		panic(fmt.Sprintf("pair failed with status %v", resp.StatusCode))
	}
}

func doAction(deviceID, userID string) {
	actions := []func(){
		genSaveConfigAction(deviceID, userID),
		genPostReadingAction(userID),
		genPollCommandsAction(deviceID),
	}
	actionNames := []string{
		"SaveConfig",
		"PostReading",
		"PollCommands",
	}
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], deviceID)
		time.Sleep(time.Duration(100+rnd.Int31n(1000)) * time.Millisecond)
	}
}

func genSaveConfigAction(deviceID, userID string) func() {
	return func() {
		resp, err := postJSON(fmt.Sprintf("/devices/%s/config", deviceID), map[string]any{
			"user_id":        userID,
			"neck_threshold": rndFloat64(10.0, 40.0, 2),
			"alert_language": "en",
		})
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}

func genPostReadingAction(userID string) func() {
	return func() {
		payload := map[string]any{
			"label":      labels[rnd.Intn(len(labels))],
			"confidence": rndFloat64(0.5, 1.0, 2),
			"timestamp":  time.Now().Format(time.RFC3339),
		}
		if rnd.Int31n(2) == 0 {
			payload["neck_angle"] = rndFloat64(0.0, 45.0, 2)
		}

		resp, err := postJSON(fmt.Sprintf("/users/%s/readings", userID), payload)
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			fmt.Printf("\nresponse status code != 201: %v\n", resp)
		}
	}
}

func genPollCommandsAction(deviceID string) func() {
	return func() {
		resp, err := http.Get(fmt.Sprintf("http://%s/devices/%s/commands", httpHostPort, deviceID))
		if err != nil {
			fmt.Printf("\nerror: %v\n", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			fmt.Printf("\nresponse status code != 200: %v\n", resp)
		}
	}
}
