package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/flexicompute/go-rental-provider/conf"
	"github.com/flexicompute/go-rental-provider/internal/market"
	"github.com/flexicompute/go-rental-provider/internal/models"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var deviceCmd = &cli.Command{
	Name:  "device",
	Usage: "Manage listed devices",
	Subcommands: []*cli.Command{
		deviceList,
	},
}

var deviceList = &cli.Command{
	Name:  "list",
	Usage: "List devices",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "status",
			Usage: "filter by device status (AVAILABLE, RENTED, OFFLINE, MAINTENANCE)",
		},
	},
	Action: func(cctx *cli.Context) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		devices, err := store.ListDevices()
		if err != nil {
			return fmt.Errorf("failed list devices, error: %+v", err)
		}

		statusFilter := models.DeviceStatus(cctx.String("status"))

		var deviceData [][]string
		var rowColorList []RowColor
		var available int
		for _, device := range devices {
			if statusFilter != "" && device.Status != statusFilter {
				continue
			}
			if device.Status == models.DeviceStatusAvailable {
				available++
			}

			var rate string
			if hourly, err := market.EffectiveHourlyRate(device); err == nil {
				rate = strconv.FormatFloat(hourly, 'f', 2, 64) + "/h"
			}

			var gpu string
			if device.Gpu != nil {
				gpu = fmt.Sprintf("%s x%d", device.Gpu.GpuModel, device.Gpu.GpuCount)
			}

			deviceData = append(deviceData,
				[]string{device.Id, device.Name, string(device.Kind), strconv.Itoa(device.CpuCores),
					strconv.Itoa(device.RamGb), gpu, string(device.Status), rate,
					strconv.Itoa(device.TotalHours)})

			var rowColor []tablewriter.Colors
			if device.Status == models.DeviceStatusAvailable {
				rowColor = []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgGreenColor}}
			} else if device.Status == models.DeviceStatusRented {
				rowColor = []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgYellowColor}}
			} else {
				rowColor = []tablewriter.Colors{{tablewriter.Bold, tablewriter.FgRedColor}}
			}
			rowColorList = append(rowColorList, RowColor{
				row:    len(deviceData) - 1,
				column: []int{6},
				color:  rowColor,
			})
		}

		header := []string{"DEVICE ID", "NAME", "KIND", "CORES", "RAM(GB)", "GPU", "STATUS", "RATE", "HOURS"}
		NewVisualTable(header, deviceData, rowColorList).Generate()
		color.New(color.FgCyan).Fprintf(os.Stdout, "\n%d devices, %d available\n", len(deviceData), available)

		return nil
	},
}

func openStore() (*market.Store, error) {
	repoPath, exist := os.LookupEnv("FC_PATH")
	if !exist {
		return nil, fmt.Errorf("missing FC_PATH env, please set export FC_PATH=xxx")
	}
	if err := conf.InitConfig(repoPath); err != nil {
		return nil, fmt.Errorf("load config file failed, error: %+v", err)
	}
	return market.OpenOrInitStore(conf.GetConfig().STORE.DatastorePath)
}
