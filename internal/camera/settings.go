package camera

import (
	"context"
	"fmt"
	"time"
)

// DeviceInfo describes the device as reported by the camera.
type DeviceInfo struct {
	Model       string `json:"model"`
	Name        string `json:"name"`
	Serial      string `json:"serialNumber"`
	Firmware    string `json:"firmVer"`
	Hardware    string `json:"hardVer"`
	ChannelNum  int    `json:"channelNum"`
	DiskNum     int    `json:"diskNum"`
	WifiSupport int    `json:"wifi"`
}

// GetDeviceInfo returns model, firmware and channel details.
func (c *Client) GetDeviceInfo(ctx context.Context) (DeviceInfo, error) {
	var value struct {
		DevInfo DeviceInfo `json:"DevInfo"`
	}
	if err := c.call(ctx, "GetDevInfo", nil, &value); err != nil {
		return DeviceInfo{}, err
	}
	return value.DevInfo, nil
}

// Storage describes one HDD or SD card slot.
type Storage struct {
	Number     int    `json:"number"`
	CapacityMB int64  `json:"capacity"`
	FreeMB     int64  `json:"size"`
	Format     int    `json:"format"`
	Mounted    int    `json:"mount"`
	Type       string `json:"storageType"`
}

// GetStorageInfo lists the device's storage slots.
func (c *Client) GetStorageInfo(ctx context.Context) ([]Storage, error) {
	var value struct {
		HddInfo []Storage `json:"HddInfo"`
	}
	if err := c.call(ctx, "GetHddInfo", nil, &value); err != nil {
		return nil, err
	}
	return value.HddInfo, nil
}

// MotionConfig holds the motion detection state for one channel.
type MotionConfig struct {
	Channel     int `json:"channel"`
	Enabled     int `json:"enable"`
	Sensitivity int `json:"sensitivity"`
}

// GetMotion reads motion detection configuration.
func (c *Client) GetMotion(ctx context.Context, channel int) (MotionConfig, error) {
	var value struct {
		MdAlarm MotionConfig `json:"MdAlarm"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetMdAlarm", param, &value); err != nil {
		return MotionConfig{}, err
	}
	return value.MdAlarm, nil
}

// SetMotion writes motion detection configuration.
func (c *Client) SetMotion(ctx context.Context, cfg MotionConfig) error {
	return c.call(ctx, "SetMdAlarm", map[string]any{"MdAlarm": cfg}, nil)
}

// AiDetectState holds per-type AI detection toggles for one channel.
type AiDetectState struct {
	Channel int `json:"channel"`
	People  int `json:"people"`
	Vehicle int `json:"vehicle"`
	DogCat  int `json:"dog_cat"`
	Face    int `json:"face"`
}

// GetAiDetect reads the AI detection toggles.
func (c *Client) GetAiDetect(ctx context.Context, channel int) (AiDetectState, error) {
	var value struct {
		AiDetectType AiDetectState `json:"AiDetectType"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetAiCfg", param, &value); err != nil {
		return AiDetectState{}, err
	}
	return value.AiDetectType, nil
}

// SetAiDetect writes the AI detection toggles.
func (c *Client) SetAiDetect(ctx context.Context, state AiDetectState) error {
	return c.call(ctx, "SetAiCfg", map[string]any{"AiDetectType": state}, nil)
}

// IrState is the infrared light mode: "Auto", "On" or "Off".
type IrState string

// GetIrLights reads the infrared light mode.
func (c *Client) GetIrLights(ctx context.Context, channel int) (IrState, error) {
	var value struct {
		IrLights struct {
			State string `json:"state"`
		} `json:"IrLights"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetIrLights", param, &value); err != nil {
		return "", err
	}
	return IrState(value.IrLights.State), nil
}

// SetIrLights writes the infrared light mode.
func (c *Client) SetIrLights(ctx context.Context, channel int, state IrState) error {
	param := map[string]any{
		"IrLights": map[string]any{"channel": channel, "state": string(state)},
	}
	return c.call(ctx, "SetIrLights", param, nil)
}

// WhiteLed holds the spotlight configuration for one channel.
type WhiteLed struct {
	Channel int `json:"channel"`
	State   int `json:"state"`
	Mode    int `json:"mode"`
	Bright  int `json:"bright"`
}

// GetWhiteLed reads the spotlight configuration.
func (c *Client) GetWhiteLed(ctx context.Context, channel int) (WhiteLed, error) {
	var value struct {
		WhiteLed WhiteLed `json:"WhiteLed"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetWhiteLed", param, &value); err != nil {
		return WhiteLed{}, err
	}
	return value.WhiteLed, nil
}

// SetWhiteLed writes the spotlight configuration.
func (c *Client) SetWhiteLed(ctx context.Context, led WhiteLed) error {
	return c.call(ctx, "SetWhiteLed", map[string]any{"WhiteLed": led}, nil)
}

// GetPowerLed reads the status LED state, "On" or "Off".
func (c *Client) GetPowerLed(ctx context.Context, channel int) (string, error) {
	var value struct {
		PowerLed struct {
			State string `json:"state"`
		} `json:"PowerLed"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetPowerLed", param, &value); err != nil {
		return "", err
	}
	return value.PowerLed.State, nil
}

// SetPowerLed writes the status LED state.
func (c *Client) SetPowerLed(ctx context.Context, channel int, state string) error {
	param := map[string]any{
		"PowerLed": map[string]any{"channel": channel, "state": state},
	}
	return c.call(ctx, "SetPowerLed", param, nil)
}

// ImageSettings holds picture adjustments for one channel; all values 0-255.
type ImageSettings struct {
	Channel    int `json:"channel"`
	Bright     int `json:"bright"`
	Contrast   int `json:"contrast"`
	Saturation int `json:"saturation"`
	Hue        int `json:"hue"`
	Sharpen    int `json:"sharpen"`
}

// GetImageSettings reads picture adjustments.
func (c *Client) GetImageSettings(ctx context.Context, channel int) (ImageSettings, error) {
	var value struct {
		Image ImageSettings `json:"Image"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetImage", param, &value); err != nil {
		return ImageSettings{}, err
	}
	return value.Image, nil
}

// SetImageSettings writes picture adjustments.
func (c *Client) SetImageSettings(ctx context.Context, settings ImageSettings) error {
	return c.call(ctx, "SetImage", map[string]any{"Image": settings}, nil)
}

// AudioConfig holds the audio settings for one channel.
type AudioConfig struct {
	Channel int `json:"channel"`
	Volume  int `json:"volume"`
	Mute    int `json:"mute"`
}

// GetAudio reads audio settings.
func (c *Client) GetAudio(ctx context.Context, channel int) (AudioConfig, error) {
	var value struct {
		AudioCfg AudioConfig `json:"AudioCfg"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetAudioCfg", param, &value); err != nil {
		return AudioConfig{}, err
	}
	return value.AudioCfg, nil
}

// SetAudio writes audio settings.
func (c *Client) SetAudio(ctx context.Context, cfg AudioConfig) error {
	return c.call(ctx, "SetAudioCfg", map[string]any{"AudioCfg": cfg}, nil)
}

// PtzPreset is one stored camera position.
type PtzPreset struct {
	Channel int    `json:"channel"`
	Enabled int    `json:"enable"`
	ID      int    `json:"id"`
	Name    string `json:"name"`
}

// GetPtzPresets lists the stored positions for a channel.
func (c *Client) GetPtzPresets(ctx context.Context, channel int) ([]PtzPreset, error) {
	var value struct {
		PtzPreset []PtzPreset `json:"PtzPreset"`
	}
	param := map[string]any{"channel": channel}
	if err := c.call(ctx, "GetPtzPreset", param, &value); err != nil {
		return nil, err
	}
	// The device reports every slot; only enabled ones are meaningful.
	presets := value.PtzPreset[:0]
	for _, p := range value.PtzPreset {
		if p.Enabled == 1 {
			presets = append(presets, p)
		}
	}
	return presets, nil
}

// PtzMove starts a continuous movement ("Left", "Right", "Up", "Down",
// "ZoomInc", "ZoomDec") at the given speed. Call PtzStop to end it.
func (c *Client) PtzMove(ctx context.Context, channel int, op string, speed int) error {
	param := map[string]any{"channel": channel, "op": op, "speed": speed}
	return c.call(ctx, "PtzCtrl", param, nil)
}

// PtzStop halts all movement on a channel.
func (c *Client) PtzStop(ctx context.Context, channel int) error {
	param := map[string]any{"channel": channel, "op": "Stop"}
	return c.call(ctx, "PtzCtrl", param, nil)
}

// PtzToPreset drives the camera to a stored position.
func (c *Client) PtzToPreset(ctx context.Context, channel, id int) error {
	param := map[string]any{"channel": channel, "op": "ToPos", "id": id, "speed": 32}
	return c.call(ctx, "PtzCtrl", param, nil)
}

// Reboot restarts the device. The connection drops shortly after.
func (c *Client) Reboot(ctx context.Context) error {
	return c.call(ctx, "Reboot", nil, nil)
}

// GetTime returns the device clock.
func (c *Client) GetTime(ctx context.Context) (time.Time, error) {
	var value struct {
		Time struct {
			apiTime
			TimeZone int `json:"timeZone"`
		} `json:"Time"`
	}
	if err := c.call(ctx, "GetTime", nil, &value); err != nil {
		return time.Time{}, err
	}
	// timeZone is seconds west of UTC.
	loc := time.FixedZone(fmt.Sprintf("UTC%+d", -value.Time.TimeZone/3600), -value.Time.TimeZone)
	return value.Time.apiTime.toTime(loc), nil
}
